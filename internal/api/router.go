// Package api serves game sessions over a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the chi router for the handler.
func (h *Handler) Router(allowedOrigins []string) chi.Router {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", h.Health)
	r.Get("/table", h.Table)
	r.Get("/results", h.Results)

	r.Route("/sessions", func(rr chi.Router) {
		rr.Post("/", h.CreateSession)
		rr.Route("/{id}", func(s chi.Router) {
			s.Get("/", h.GetSession)
			s.Delete("/", h.DeleteSession)
			s.Post("/rounds", h.PlayRound)
			s.Post("/restart", h.Restart)
			s.Get("/report", h.Report)
		})
	})

	return r
}

// logRequests logs each request once it has been served.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Server runs the API until its context is cancelled.
type Server struct {
	httpServer *http.Server
	registry   *Registry
	logger     *log.Logger
}

// NewServer creates a server for h listening on addr.
func NewServer(addr string, h *Handler, allowedOrigins []string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           h.Router(allowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: h.registry,
		logger:   h.logger,
	}
}

// Run listens until ctx is done, then shuts down gracefully. Idle sessions
// are swept for as long as it runs.
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.registry.RunSweeper(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
