package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilbhutani/slidepilot/internal/api"
	"github.com/nikhilbhutani/slidepilot/internal/config"
	"github.com/nikhilbhutani/slidepilot/internal/deck"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Slide deck is optional; without one the client supplies slide captures.
	var slideDeck *deck.Deck
	if d, err := deck.Load(cfg.Deck.Dir); err != nil {
		slog.Warn("no slide deck loaded, relying on client captures", "dir", cfg.Deck.Dir, "error", err)
	} else {
		slideDeck = d
		slog.Info("slide deck loaded", "dir", cfg.Deck.Dir, "slides", d.Count())
	}

	router := api.NewRouter(cfg, slideDeck)
	handler := router.Setup()

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// No write timeout: the TTS relay holds the response open while
		// audio streams from the provider.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
