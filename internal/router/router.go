package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/taskflow/internal/auth"
	_ "github.com/saulo-duarte/taskflow/internal/docs"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/middlewares"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"github.com/saulo-duarte/taskflow/internal/task"
	"github.com/saulo-duarte/taskflow/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	SessionHandler *auth.Handler
	TaskHandler    *task.Handler
	Renderer       *inertia.Renderer
	Covers         http.Handler
	AllowedOrigins []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins...))
	r.Use(middlewares.MethodOverride)
	r.Use(cfg.Renderer.VersionMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if cfg.Covers != nil {
		r.Handle(storage.CoversURLPrefix+"*", cfg.Covers)
	}

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, cfg.SessionHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/", cfg.TaskHandler.Home)
		r.Mount("/todos", task.Routes(cfg.TaskHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
	})
	return r
}
