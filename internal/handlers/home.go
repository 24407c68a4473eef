package handlers

import (
	"context"
	"errors"
	"net/http"

	"todolists/internal/models"
)

// ListView is a list as shown to clients: its visible tasks under the
// current filter plus counts over all of its tasks.
type ListView struct {
	models.List
	Tasks   []models.Task  `json:"tasks"`
	Summary models.Summary `json:"summary"`
	Warning string         `json:"warning,omitempty"`
}

// Overview returns every list with its visible tasks.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lists, err := h.store.ListLists(ctx)
	if err != nil {
		h.respondServerError(w, err)
		return
	}

	views := make([]ListView, 0, len(lists))
	for _, list := range lists {
		view, err := h.buildView(ctx, list)
		if errors.Is(err, models.ErrNotFound) {
			// Removed after ListLists.
			continue
		}
		if err != nil {
			h.respondStoreError(w, err)
			return
		}
		views = append(views, *view)
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *Handlers) buildView(ctx context.Context, list models.List) (*ListView, error) {
	visible, err := h.store.VisibleTasks(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	all, err := h.store.ListTasks(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	return &ListView{
		List:    list,
		Tasks:   visible,
		Summary: models.Summarize(all),
	}, nil
}

// loadView fetches a list by id and builds its view.
func (h *Handlers) loadView(ctx context.Context, id string) (*ListView, error) {
	list, err := h.store.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.buildView(ctx, *list)
}
