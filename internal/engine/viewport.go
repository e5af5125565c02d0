package engine

import "github.com/polyplot/polyplot/internal/document"

// Viewport maps between math space (the view window) and screen space (canvas
// pixels, origin top-left, y growing downward). Scale factors are fixed at
// construction.
type Viewport struct {
	view   document.View
	width  float64
	height float64
	scaleX float64
	scaleY float64
}

// NewViewport builds the mapping for a view window drawn on a canvas. The
// caller is expected to have validated both.
func NewViewport(view document.View, canvas document.Canvas) Viewport {
	w := float64(canvas.Width)
	h := float64(canvas.Height)
	return Viewport{
		view:   view,
		width:  w,
		height: h,
		scaleX: w / (view.XMax - view.XMin),
		scaleY: h / (view.YMax - view.YMin),
	}
}

func (v Viewport) ToScreenX(x float64) float64 {
	return (x - v.view.XMin) * v.scaleX
}

// ToScreenY flips the axis: larger math y is higher on screen.
func (v Viewport) ToScreenY(y float64) float64 {
	return v.height - (y-v.view.YMin)*v.scaleY
}

func (v Viewport) ToMathX(sx float64) float64 {
	return sx/v.scaleX + v.view.XMin
}

func (v Viewport) ToMathY(sy float64) float64 {
	return (v.height-sy)/v.scaleY + v.view.YMin
}

// ToScreen projects a math-space point onto the canvas.
func (v Viewport) ToScreen(p document.Point) (float64, float64) {
	return v.ToScreenX(p.X), v.ToScreenY(p.Y)
}

// ToMath maps a canvas position back into math space.
func (v Viewport) ToMath(sx, sy float64) document.Point {
	return document.Point{X: v.ToMathX(sx), Y: v.ToMathY(sy)}
}

func (v Viewport) View() document.View { return v.view }
func (v Viewport) Width() float64      { return v.width }
func (v Viewport) Height() float64     { return v.height }

// Matrix returns the math-to-screen mapping as an affine matrix.
func (v Viewport) Matrix() Matrix2D {
	// Translate(0, h) * Scale(sx, -sy) * Translate(-xmin, -ymin)
	return Translate(0, v.height).
		Multiply(Scale(v.scaleX, -v.scaleY)).
		Multiply(Translate(-v.view.XMin, -v.view.YMin))
}
