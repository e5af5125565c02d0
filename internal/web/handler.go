package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/polyplot/polyplot/internal/document"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the browser shim, the compiled WASM engine and the preset list.
type Handler struct {
	wasmDir string // directory holding polyplot.wasm and wasm_exec.js
	static  fs.FS
}

// NewHandler creates a web handler. wasmDir may be missing; the shim then
// falls back to the websocket session.
func NewHandler(wasmDir string) *Handler {
	if _, err := os.Stat(wasmDir); err != nil {
		slog.Warn("wasm dir unavailable, browser will use websocket sessions", "dir", wasmDir, "error", err)
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return &Handler{wasmDir: wasmDir, static: sub}
}

// Static serves the embedded page and script.
func (h *Handler) Static() http.Handler {
	fileServer := http.FileServer(http.FS(h.static))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// WASM serves GET /wasm/ from the build output directory.
func (h *Handler) WASM() http.Handler {
	fileServer := http.FileServer(http.Dir(h.wasmDir))
	return http.StripPrefix("/wasm/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Rebuilt in place, so revalidate on every load
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	}))
}

// Presets handles GET /presets.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, document.Presets())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
