package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Router struct {
	chi.Router
}

func NewRouter() *Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(NewLoggerMiddleware())
	r.Use(middleware.Recoverer)

	return &Router{Router: r}
}

// SetupRoutes mounts the dashboard API. metricsHandler may be nil, in which
// case /metrics is not served.
func (r *Router) SetupRoutes(handler *DashboardHandler, metricsHandler http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", handler.GetSnapshotHandler)
		r.Post("/refresh", handler.RefreshHandler)
		r.Post("/start", handler.StartHandler)
		r.Post("/stop", handler.StopHandler)
		r.Put("/visibility/{state}", handler.SetVisibilityHandler)
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
}
