// Package raster replays engine draw commands onto a gg software canvas, for
// PNG export and the desktop window.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

// coordLimit keeps far off-canvas vertices within what the rasterizer can
// stroke. Segments that run that far are nearly vertical at canvas scale, so
// clamping them does not visibly change the curve.
const coordLimit = 1e6

// Painter owns a gg context sized to the canvas.
type Painter struct {
	dc *gg.Context
}

// NewPainter creates a painter for a canvas of the given size.
func NewPainter(canvas document.Canvas) *Painter {
	return &Painter{dc: gg.NewContext(canvas.Width, canvas.Height)}
}

// Paint executes commands in order. Unknown ops are skipped.
func (p *Painter) Paint(commands []engine.DrawCommand) error {
	for i, cmd := range commands {
		var err error
		switch cmd.Op {
		case engine.OpClear:
			p.dc.ClearWithColor(gg.Hex(colorOr(cmd.Fill, engine.BackgroundColor)))
		case engine.OpPath:
			err = p.strokePath(cmd)
		case engine.OpCircle:
			p.dc.DrawCircle(clamp(cmd.X), clamp(cmd.Y), cmd.Radius)
			p.dc.SetHexColor(colorOr(cmd.Fill, engine.MarkerColor))
			err = p.dc.Fill()
		}
		if err != nil {
			return fmt.Errorf("paint command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return nil
}

func (p *Painter) strokePath(cmd engine.DrawCommand) error {
	if len(cmd.Path) == 0 {
		return nil
	}
	for _, seg := range cmd.Path {
		op, x, y, ok := decodeSegment(seg)
		if !ok {
			continue
		}
		switch op {
		case "M":
			p.dc.MoveTo(x, y)
		case "L":
			p.dc.LineTo(x, y)
		}
	}
	width := cmd.StrokeWidth
	if width <= 0 {
		width = 1
	}
	p.dc.SetLineWidth(width)
	p.dc.SetHexColor(colorOr(cmd.Stroke, "#000000"))
	return p.dc.Stroke()
}

// decodeSegment accepts both in-process segments and ones decoded from JSON;
// both carry float64 coordinates.
func decodeSegment(seg engine.PathCommand) (string, float64, float64, bool) {
	if len(seg) != 3 {
		return "", 0, 0, false
	}
	op, ok := seg[0].(string)
	if !ok {
		return "", 0, 0, false
	}
	x, okx := seg[1].(float64)
	y, oky := seg[2].(float64)
	if !okx || !oky || math.IsNaN(x) || math.IsNaN(y) {
		return "", 0, 0, false
	}
	return op, clamp(x), clamp(y), true
}

func clamp(v float64) float64 {
	return math.Max(-coordLimit, math.Min(coordLimit, v))
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

// Image returns the painted canvas.
func (p *Painter) Image() image.Image {
	return p.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (p *Painter) EncodePNG(w io.Writer) error {
	return p.dc.EncodePNG(w)
}

// Close releases the underlying context.
func (p *Painter) Close() error {
	return p.dc.Close()
}

// RenderSnapshot draws a snapshot the way an interactive engine would show it.
// Points go through the usual add separation, so the image matches what a
// user placing the same points would see.
func RenderSnapshot(w io.Writer, snap document.Snapshot) error {
	if err := snap.Normalize(); err != nil {
		return err
	}

	eng := engine.NewEngine(snap.View, snap.Canvas)
	eng.LoadPoints(snap.Points)

	p := NewPainter(snap.Canvas)
	defer p.Close()

	if err := p.Paint(eng.Frame()); err != nil {
		return err
	}
	if err := p.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
