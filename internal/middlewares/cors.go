package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// Cors allows credentialed requests from the given origins. An empty list
// disables cross-origin access.
func Cors(origins ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return allowed[origin]
		},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"X-Inertia",
			"X-Inertia-Version",
			"X-Inertia-Partial-Data",
			"X-Inertia-Partial-Component",
		},
		ExposedHeaders:   []string{"X-Inertia", "X-Inertia-Location"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
