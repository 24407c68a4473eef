package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"todolists/internal/models"
)

// TaskView is a task as returned from create and update calls.
type TaskView struct {
	models.Task
	Warning string `json:"warning,omitempty"`
}

// ListTasks returns every task of a list regardless of its filter.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// CreateTask adds a task to the head of a list.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	taskID, err := h.store.AddTask(ctx, listID, title)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondTask(w, r, listID, taskID, http.StatusCreated, models.TitleHint(title))
}

// RenameTask replaces the title of a task.
func (h *Handlers) RenameTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listID := chi.URLParam(r, "id")
	taskID := chi.URLParam(r, "taskID")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	if err := h.store.RenameTask(ctx, listID, taskID, title); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondTask(w, r, listID, taskID, http.StatusOK, models.TitleHint(title))
}

// SetTaskDone sets the completion flag of a task.
func (h *Handlers) SetTaskDone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listID := chi.URLParam(r, "id")
	taskID := chi.URLParam(r, "taskID")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	done, err := strconv.ParseBool(r.FormValue("done"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "done must be true or false")
		return
	}

	if err := h.store.SetTaskDone(ctx, listID, taskID, done); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondTask(w, r, listID, taskID, http.StatusOK, "")
}

// DeleteTask removes a task. Deleting a missing task succeeds.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")
	taskID := chi.URLParam(r, "taskID")

	if err := h.store.RemoveTask(r.Context(), listID, taskID); err != nil {
		h.respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondTask writes the current state of a task. Updates to a task that
// does not exist are no-ops in the store, so they surface here as 404.
func (h *Handlers) respondTask(w http.ResponseWriter, r *http.Request, listID, taskID string, code int, warning string) {
	tasks, err := h.store.ListTasks(r.Context(), listID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	for _, t := range tasks {
		if t.ID == taskID {
			respondJSON(w, code, TaskView{Task: t, Warning: warning})
			return
		}
	}

	respondError(w, http.StatusNotFound, "task not found")
}
