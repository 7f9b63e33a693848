package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/hypdisk/hypdisk/internal/asset"
	"github.com/hypdisk/hypdisk/internal/config"
	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/hypdisk/hypdisk/internal/export"
	"github.com/hypdisk/hypdisk/internal/live"
	mw "github.com/hypdisk/hypdisk/internal/middleware"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	engine.SetLogger(logger.With("component", "engine"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	settings := cfg.EngineSettings()
	origins := cfg.Origins()

	hub := live.NewHub()
	go hub.Run()

	assetHandler := asset.NewHandler(cfg.StaticDir)
	exportHandler := export.NewHandler(hub, settings)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, hub.Len())
	}).Methods("GET")

	// Live editing sessions, one engine per connection
	r.HandleFunc("/ws/session", live.Handler(hub, settings, origins))

	// PNG export
	r.HandleFunc("/sessions/{sessionId}/frame.png", exportHandler.Frame).Methods("GET")
	r.HandleFunc("/render", exportHandler.Render).Methods("POST", "OPTIONS")

	// Browser UI and the wasm engine
	r.PathPrefix("/").Handler(assetHandler.Serve()).Methods("GET", "HEAD")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close live sessions first so their pumps exit
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "addr", addr, "canvas", settings.CanvasSize, "static", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
