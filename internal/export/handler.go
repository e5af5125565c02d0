package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/raster"
	"github.com/polyplot/polyplot/internal/typeid"
)

const (
	maxBodySize = 1 << 20 // 1MB
	// maxPoints bounds the O(n^2) evaluation per curve sample.
	maxPoints = 256
)

type Handler struct {
	defaultView   document.View
	defaultCanvas document.Canvas
}

// NewHandler creates an export handler. Snapshots that omit a view or canvas
// get the given defaults.
func NewHandler(view document.View, canvas document.Canvas) *Handler {
	return &Handler{defaultView: view, defaultCanvas: canvas}
}

// ExportPNG handles POST /export/png with a JSON snapshot body and responds
// with the rendered image.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var snap document.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid snapshot body"})
		return
	}
	if len(snap.Points) > maxPoints {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("too many points: %d (max %d)", len(snap.Points), maxPoints),
		})
		return
	}
	if snap.View.IsZero() {
		snap.View = h.defaultView
	}
	if snap.Canvas == (document.Canvas{}) {
		snap.Canvas = h.defaultCanvas
	}

	var buf bytes.Buffer
	if err := raster.RenderSnapshot(&buf, snap); err != nil {
		if errors.Is(err, document.ErrInvalidView) || errors.Is(err, document.ErrInvalidCanvas) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("render snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	exportID := typeid.NewExportID()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, exportID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("write export", "error", err, "export", exportID)
		return
	}

	slog.Info("export complete", "export", exportID, "points", len(snap.Points), "size", buf.Len())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
