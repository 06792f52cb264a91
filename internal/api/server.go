package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"git.sr.ht/~spc/go-log"
)

const readHeaderTimeout = 5 * time.Second

type Server struct {
	server *http.Server
}

func NewServer(address string, handler *DashboardHandler, metricsHandler http.Handler) *Server {
	router := NewRouter()
	router.SetupRoutes(handler, metricsHandler)

	return &Server{
		server: &http.Server{
			Addr:              address,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start blocks until the server is shut down.
func (s *Server) Start() error {
	log.Infof("dashboard API listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
