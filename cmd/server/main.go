package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/textdrop/backend/internal/config"
	"github.com/textdrop/backend/internal/ident"
	"github.com/textdrop/backend/internal/logging"
	"github.com/textdrop/backend/internal/router"
	"github.com/textdrop/backend/internal/session"
)

func main() {
	// Initialize structured logging (reads LOGGING_LEVEL env var)
	logging.Initialize()

	// Load configuration
	cfg := config.Load()

	// Initialize the session registry and its expiry reaper
	registry := session.NewRegistry(ident.New)
	defer registry.Close()

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	reaper := session.NewReaper(registry, cfg.ReaperInterval, cfg.SessionMaxAge)
	go reaper.Run(reaperCtx)

	// Create router
	r := router.New(cfg, registry)

	// Start server
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		slog.Info("starting server", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM: stop accepting requests, then
	// close the registry so live streams observe termination.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	stopReaper()
	registry.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.String("error", err.Error()))
	}
}
