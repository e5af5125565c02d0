package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/polyplot/polyplot/internal/document"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	CanvasWidth    int     `envconfig:"CANVAS_WIDTH" default:"600"`
	CanvasHeight   int     `envconfig:"CANVAS_HEIGHT" default:"600"`
	ViewXMin       float64 `envconfig:"VIEW_XMIN" default:"-10"`
	ViewXMax       float64 `envconfig:"VIEW_XMAX" default:"10"`
	ViewYMin       float64 `envconfig:"VIEW_YMIN" default:"-10"`
	ViewYMax       float64 `envconfig:"VIEW_YMAX" default:"10"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"localhost:8080,localhost:5173"`
	WasmDir        string  `envconfig:"WASM_DIR" default:"./web/wasm"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	WindowScale    int     `envconfig:"WINDOW_SCALE" default:"1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.View().Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Canvas().Validate(); err != nil {
		return nil, err
	}
	if cfg.WindowScale < 1 {
		cfg.WindowScale = 1
	}
	return &cfg, nil
}

// View returns the configured math-space window.
func (c *Config) View() document.View {
	return document.View{XMin: c.ViewXMin, XMax: c.ViewXMax, YMin: c.ViewYMin, YMax: c.ViewYMax}
}

// Canvas returns the configured drawing surface size.
func (c *Config) Canvas() document.Canvas {
	return document.Canvas{Width: c.CanvasWidth, Height: c.CanvasHeight}
}

// Origins splits AllowedOrigins into host patterns, dropping empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}
