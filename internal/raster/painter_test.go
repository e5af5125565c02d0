package raster

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

func rgb(c color.Color) (uint32, uint32, uint32) {
	r, g, b, _ := c.RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestPaintFrame(t *testing.T) {
	eng := engine.NewEngine(document.DefaultView(), document.DefaultCanvas())
	eng.LoadPoints([]document.Point{{X: 2, Y: 3}}) // marker at (360, 210)

	p := NewPainter(document.DefaultCanvas())
	defer p.Close()
	if err := p.Paint(eng.Frame()); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	img := p.Image()

	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 600 {
		t.Fatalf("bounds = %v", b)
	}

	// Background away from axes, marker and curve.
	if r, g, b := rgb(img.At(100, 500)); r < 250 || g < 250 || b < 250 {
		t.Errorf("background pixel = (%d, %d, %d), want white", r, g, b)
	}

	// Inside the marker, three pixels below the horizontal curve.
	if r, g, b := rgb(img.At(360, 213)); r < 200 || g > 60 || b > 60 {
		t.Errorf("marker pixel = (%d, %d, %d), want red", r, g, b)
	}

	// The constant curve y = 3 straddles rows 209 and 210.
	r1, _, b1 := rgb(img.At(100, 209))
	r2, _, b2 := rgb(img.At(100, 210))
	if b1 < r1+50 && b2 < r2+50 {
		t.Errorf("no blue on the curve at x=100: rows 209/210 = (%d, %d) / (%d, %d) red/blue", r1, b1, r2, b2)
	}
}

func TestPaintJSONRoundTrip(t *testing.T) {
	eng := engine.NewEngine(document.DefaultView(), document.DefaultCanvas())
	if err := eng.LoadPreset("runge"); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}

	// A frame decoded from JSON paints the same way as the in-process one.
	var decoded []engine.DrawCommand
	if err := json.Unmarshal([]byte(eng.Render()), &decoded); err != nil {
		t.Fatalf("decode frame: %v", err)
	}

	p := NewPainter(document.DefaultCanvas())
	defer p.Close()
	if err := p.Paint(decoded); err != nil {
		t.Fatalf("Paint: %v", err)
	}
}

func TestRenderSnapshot(t *testing.T) {
	var buf bytes.Buffer
	snap := document.Snapshot{
		Canvas: document.Canvas{Width: 200, Height: 100},
		Points: []document.Point{{X: -1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}},
	}
	if err := RenderSnapshot(&buf, snap); err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRenderSnapshotInvalid(t *testing.T) {
	views := []document.View{
		{XMin: 1, XMax: -1, YMin: 0, YMax: 1},
		{XMin: -1e308, XMax: 1e308, YMin: -10, YMax: 10},
	}
	for _, v := range views {
		var buf bytes.Buffer
		err := RenderSnapshot(&buf, document.Snapshot{View: v})
		if !errors.Is(err, document.ErrInvalidView) {
			t.Errorf("RenderSnapshot(%+v) = %v, want ErrInvalidView", v, err)
		}
		if buf.Len() != 0 {
			t.Errorf("RenderSnapshot(%+v) wrote %d bytes", v, buf.Len())
		}
	}
}
