package export

import (
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polyplot/polyplot/internal/document"
)

func newTestHandler() *Handler {
	return NewHandler(document.DefaultView(), document.Canvas{Width: 120, Height: 80})
}

func TestExportPNG(t *testing.T) {
	body := `{"points":[{"x":-1,"y":1},{"x":0,"y":0},{"x":1,"y":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/export/png", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestHandler().ExportPNG(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="exp_`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The handler's default canvas applies when the body has none.
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestExportPNGErrors(t *testing.T) {
	var many strings.Builder
	many.WriteString(`{"points":[`)
	for i := 0; i <= maxPoints; i++ {
		if i > 0 {
			many.WriteString(",")
		}
		fmt.Fprintf(&many, `{"x":%d,"y":0}`, i)
	}
	many.WriteString(`]}`)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"points":`},
		{"inverted view", `{"view":{"xmin":1,"xmax":-1,"ymin":0,"ymax":1},"points":[]}`},
		{"oversized canvas", `{"canvas":{"width":100000,"height":10},"points":[]}`},
		{"too many points", many.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/export/png", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTestHandler().ExportPNG(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}
