package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/juristech/prazojus/internal/config"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

// Server wraps the standard http.Server around the gin router.
type Server struct {
	srv *http.Server
	cfg config.ServerConfig
	log logging.Logger
}

// NewServer builds a server listening on the configured port.
func NewServer(cfg config.ServerConfig, handler http.Handler, log logging.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log.Named("http_server"),
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("http server listening", logging.Int("port", s.cfg.Port))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down http server")
	return s.srv.Shutdown(shutdownCtx)
}
