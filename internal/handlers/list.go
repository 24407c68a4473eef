package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"todolists/internal/models"
)

// GetList returns one list with its visible tasks.
func (h *Handlers) GetList(w http.ResponseWriter, r *http.Request) {
	view, err := h.loadView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// CreateList creates a new list.
func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	id, err := h.store.AddList(ctx, title)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	view, err := h.loadView(ctx, id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	view.Warning = models.TitleHint(title)

	h.logger.Debug("list created", "list_id", id)
	respondJSON(w, http.StatusCreated, view)
}

// RenameList replaces the title of a list.
func (h *Handlers) RenameList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	if err := h.store.RenameList(ctx, id, title); err != nil {
		h.respondStoreError(w, err)
		return
	}

	view, err := h.loadView(ctx, id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	view.Warning = models.TitleHint(title)

	respondJSON(w, http.StatusOK, view)
}

// SetFilter changes which tasks of a list are visible.
func (h *Handlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	filter, err := models.ParseFilter(r.FormValue("filter"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	if err := h.store.SetFilter(ctx, id, filter); err != nil {
		h.respondStoreError(w, err)
		return
	}

	view, err := h.loadView(ctx, id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// DeleteList removes a list and its tasks.
func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.RemoveList(r.Context(), id); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.logger.Debug("list removed", "list_id", id)
	w.WriteHeader(http.StatusNoContent)
}
