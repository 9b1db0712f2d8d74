package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/taskflow/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	return r
}

// AuthRoutes are the public sign-in endpoints mounted under /auth.
func AuthRoutes(h *Handler, sessions *auth.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/google", h.GoogleRedirect)
	r.Get("/google/callback", h.GoogleCallback)
	r.Post("/login", h.GoogleLogin)
	r.Get("/logout", sessions.Logout)
	r.Post("/logout", sessions.Logout)
	return r
}
