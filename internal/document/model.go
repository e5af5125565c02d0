package document

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidView   = errors.New("invalid view window")
	ErrInvalidCanvas = errors.New("invalid canvas size")
)

// MaxCanvasSize bounds either canvas dimension for requests that carry their own size.
const MaxCanvasSize = 4096

// Point is a user-placed point in math space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// View is the visible math-space rectangle. It is fixed for the life of an engine.
type View struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// Canvas is the pixel size of the drawing surface.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultView returns the [-10, 10] x [-10, 10] window.
func DefaultView() View {
	return View{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
}

// DefaultCanvas returns a 600x600 canvas.
func DefaultCanvas() Canvas {
	return Canvas{Width: 600, Height: 600}
}

// IsZero reports whether no bound has been set.
func (v View) IsZero() bool {
	return v == View{}
}

// Validate checks that the window has finite bounds and a positive extent on both axes.
func (v View) Validate() error {
	for _, f := range []float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound", ErrInvalidView)
		}
	}
	if v.XMax <= v.XMin {
		return fmt.Errorf("%w: xmax %g must exceed xmin %g", ErrInvalidView, v.XMax, v.XMin)
	}
	if v.YMax <= v.YMin {
		return fmt.Errorf("%w: ymax %g must exceed ymin %g", ErrInvalidView, v.YMax, v.YMin)
	}
	if math.IsInf(v.XMax-v.XMin, 0) || math.IsInf(v.YMax-v.YMin, 0) {
		return fmt.Errorf("%w: extent overflows", ErrInvalidView)
	}
	return nil
}

// Validate checks that both dimensions are positive and no larger than MaxCanvasSize.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, c.Width, c.Height)
	}
	if c.Width > MaxCanvasSize || c.Height > MaxCanvasSize {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidCanvas, c.Width, c.Height, MaxCanvasSize)
	}
	return nil
}

// Snapshot is a self-contained description of a plot: the window, the canvas
// and the points in insertion order.
type Snapshot struct {
	ID     string  `json:"id,omitempty"`
	View   View    `json:"view"`
	Canvas Canvas  `json:"canvas"`
	Points []Point `json:"points"`
}

// Normalize fills an unset view or canvas with the defaults and validates the result.
func (s *Snapshot) Normalize() error {
	if s.View.IsZero() {
		s.View = DefaultView()
	}
	if s.Canvas == (Canvas{}) {
		s.Canvas = DefaultCanvas()
	}
	if s.Points == nil {
		s.Points = []Point{}
	}
	if err := s.View.Validate(); err != nil {
		return err
	}
	return s.Canvas.Validate()
}
