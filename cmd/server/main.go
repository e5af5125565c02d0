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

	"github.com/gogpu/gg"
	"github.com/gorilla/mux"

	"github.com/polyplot/polyplot/internal/config"
	"github.com/polyplot/polyplot/internal/engine"
	"github.com/polyplot/polyplot/internal/export"
	mw "github.com/polyplot/polyplot/internal/middleware"
	"github.com/polyplot/polyplot/internal/session"
	"github.com/polyplot/polyplot/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Warn("falling back to info logging", "error", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	view, canvas := cfg.View(), cfg.Canvas()

	// Every websocket session gets its own engine over the configured window
	hub := session.NewHub(func() *engine.Engine {
		return engine.NewEngine(view, canvas)
	})
	go hub.Run()

	webHandler := web.NewHandler(cfg.WasmDir)
	exportHandler := export.NewHandler(view, canvas)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/presets", webHandler.Presets).Methods("GET")
	r.HandleFunc("/export/png", exportHandler.ExportPNG).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	r.HandleFunc("/ws/session", session.Handler(hub, cfg.Origins())).Methods("GET")

	r.PathPrefix("/wasm/").Handler(webHandler.WASM()).Methods("GET")
	r.PathPrefix("/").Handler(webHandler.Static()).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close sessions first; hijacked connections are not drained by Shutdown
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "view", view, "canvas", canvas)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
