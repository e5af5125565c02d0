package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/polyplot/polyplot/internal/config"
	"github.com/polyplot/polyplot/internal/desktop"
)

func main() {
	preset := flag.String("preset", "", "preset to load at startup (line, parabola, cubic, runge)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Warn("falling back to info logging", "error", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	err = desktop.RunWindow(desktop.Options{
		View:   cfg.View(),
		Canvas: cfg.Canvas(),
		Scale:  cfg.WindowScale,
		Preset: *preset,
	})
	if err != nil {
		slog.Error("desktop window", "error", err)
		os.Exit(1)
	}
}
