package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

// FrameSource is what a Surface repaints from. *engine.Engine implements it.
type FrameSource interface {
	Version() uint64
	Frame() []engine.DrawCommand
}

// Surface keeps an RGBA copy of a source's latest frame, repainting only when
// the source's version moves.
type Surface struct {
	src     FrameSource
	painter *Painter
	rgba    *image.RGBA
	version uint64
	painted bool
}

// NewSurface creates a surface of the given canvas size over src.
func NewSurface(src FrameSource, canvas document.Canvas) *Surface {
	return &Surface{
		src:     src,
		painter: NewPainter(canvas),
		rgba:    image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height)),
	}
}

// Refresh repaints when the source changed since the last call and reports
// whether the pixels were updated.
func (s *Surface) Refresh() (bool, error) {
	v := s.src.Version()
	if s.painted && v == s.version {
		return false, nil
	}
	if err := s.painter.Paint(s.src.Frame()); err != nil {
		return false, fmt.Errorf("repaint version %d: %w", v, err)
	}
	img := s.painter.Image()
	draw.Draw(s.rgba, s.rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	s.version = v
	s.painted = true
	return true, nil
}

// RGBA returns the surface pixels. The image is reused across refreshes.
func (s *Surface) RGBA() *image.RGBA {
	return s.rgba
}

func (s *Surface) Close() error {
	return s.painter.Close()
}
