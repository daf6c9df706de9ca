package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/config"
)

type Server struct {
	cfg     config.Config
	handler http.Handler
	logger  *zap.Logger
}

func New(cfg config.Config, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    net.JoinHostPort("", s.cfg.HTTPPort),
		Handler: s.handler,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	s.logger.Info("server listening", zap.String("port", s.cfg.HTTPPort))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	s.logger.Info("server stopped")
	return nil
}
