package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"todolists/internal/models"
	"todolists/internal/store"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store  store.Store
	logger *log.Logger
}

// New creates a new Handlers instance.
func New(s store.Store, logger *log.Logger) *Handlers {
	return &Handlers{
		store:  s,
		logger: logger,
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/api/lists", func(r chi.Router) {
		r.Get("/", h.Overview)
		r.Post("/", h.CreateList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetList)
			r.Put("/", h.RenameList)
			r.Delete("/", h.DeleteList)
			r.Put("/filter", h.SetFilter)

			r.Get("/tasks", h.ListTasks)
			r.Post("/tasks", h.CreateTask)
			r.Put("/tasks/{taskID}", h.RenameTask)
			r.Delete("/tasks/{taskID}", h.DeleteTask)
			r.Post("/tasks/{taskID}/done", h.SetTaskDone)
		})
	})
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error("internal server error", "err", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondStoreError maps store errors onto status codes.
func (h *Handlers) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTitle), errors.Is(err, models.ErrInvalidFilter):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.respondServerError(w, err)
	}
}
