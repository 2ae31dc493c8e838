// Package server builds the HTTP engine shared by every service binary and runs it
// with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ReadHeaderTimeout bounds how long a client may take to send request headers.
	ReadHeaderTimeout = 10 * time.Second
	// ShutdownTimeout bounds how long in-flight requests get to finish on shutdown.
	ShutdownTimeout = 15 * time.Second
)

// ServiceName is the name a service reports in health responses and spans.
func ServiceName(cfg *config.ServiceConfig) string {
	return cfg.Name + "-api"
}

// NewEngine returns a gin engine with the shared middleware chain and JSON 404/405 handlers.
func NewEngine(cfg *config.ServiceConfig, log logger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.Tracing(ServiceName(cfg)),
		middleware.CORS(),
		middleware.RateLimit(cfg.RateLimit),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Message(c, http.StatusNotFound, fmt.Sprintf("route %s %s not found", c.Request.Method, c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Message(c, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", c.Request.Method, c.Request.URL.Path))
	})
	return r
}

// Run listens on the configured port and serves handler until ctx is done.
func Run(ctx context.Context, cfg *config.ServiceConfig, handler http.Handler, log logger.Logger, onShutdown ...func()) error {
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, ln, handler, log, onShutdown...)
}

// Serve serves handler on ln until ctx is done, then shuts down gracefully.
// onShutdown hooks run when shutdown starts; use them to close hijacked connections.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log logger.Logger, onShutdown ...func()) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: ReadHeaderTimeout, // Prevent Slowloris attack
	}
	for _, hook := range onShutdown {
		srv.RegisterOnShutdown(hook)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Starting server on ", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		log.Info("Shutdown requested, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
