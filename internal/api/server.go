package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rpgo/wealth-projector/internal/log"
)

// DefaultPort is used when neither a flag nor WEALTHSIM_PORT sets one.
const DefaultPort = "8080"

const shutdownTimeout = 10 * time.Second

// PortFromEnv returns WEALTHSIM_PORT or DefaultPort.
func PortFromEnv() string {
	if p := os.Getenv("WEALTHSIM_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
