package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateTask)
	r.Put("/{id}", h.UpdateTask)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.DeleteTask)
	return r
}
