// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "crowdfund-api/internal"
	"crowdfund-api/internal/api/handler"
)

// shutdownGrace is how long in-flight investments get to commit or roll back on shutdown.
const shutdownGrace = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	server := newServer(application.Config.ServerPort, application.HTTPHandler)

	serverErr := make(chan error, 1)
	go func() {
		application.Logger.Info("Starting crowdfund API", "addr", server.Addr, "request_timeout", handler.DefaultTimeout.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		application.Logger.Info("Shutdown signal received, draining requests", "grace", shutdownGrace.String())
	case err := <-serverErr:
		application.Logger.Error("HTTP server failed", "error", err)
		exitCode = 1
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("HTTP server shutdown failed", "error", err)
		exitCode = 1
	}

	// Close the pool only after the server stopped handing out transactions.
	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("Application shutdown failed", "error", err)
		exitCode = 1
	}

	if exitCode == 0 {
		application.Logger.Info("Crowdfund API stopped.")
	}
	cancel()
	os.Exit(exitCode)
}

// newServer builds the HTTP server. Its write timeout outlasts handler.DefaultTimeout so the
// timeout middleware can still answer a slow investment with a proper response.
func newServer(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      handler.DefaultTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
