package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/config"
)

// ServerDependencies holds all dependencies needed for the stand-in store
type ServerDependencies struct {
	ServerConfig      config.ServerConfig
	StorefrontHandler http.Handler
	APIHandler        http.Handler
	Logger            *zap.Logger
}

func (d ServerDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// RunServe starts the stand-in store and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdownWithLogger(server, nil, 30*time.Second, deps.logger())
}

// NewRouter mounts the JSON API under /api and the storefront everywhere
// else
func NewRouter(deps ServerDependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.logger()))

	r.Mount("/api", deps.APIHandler)
	r.Mount("/", deps.StorefrontHandler)
	return r
}

// requestLogger logs one line per request at debug level
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.logger()

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	return WaitForShutdownWithLogger(server, shutdown, shutdownTimeout, zap.NewNop())
}

// WaitForShutdownWithLogger is WaitForShutdownWithTimeout reporting to logger
func WaitForShutdownWithLogger(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so
		// this second failure is not expected in practice
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
