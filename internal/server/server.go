package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rsviz/budgetflow/internal/assembler"
)

// Server ties the assembler to an HTTP listener.
type Server struct {
	service *assembler.Service
	logger  *slog.Logger
	metrics *Metrics
	http    *http.Server
}

// New wires the router. The listen address is bound later by Run.
func New(addr string, svc *assembler.Service, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		logger:  logger,
		metrics: NewMetrics(svc.CacheStats),
	}

	r := mux.NewRouter()
	r.Use(tracingMiddleware(logger))
	r.Use(s.metrics.Middleware())
	r.HandleFunc("/api/v1/flowgraph", s.handleFlowGraph).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, used by tests via httptest.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is canceled, then drains in-flight requests
// for up to 10 seconds.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
