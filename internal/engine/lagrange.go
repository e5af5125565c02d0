package engine

import (
	"math"

	"github.com/polyplot/polyplot/internal/document"
)

const (
	// DegenerateEpsilon is the node separation below which a basis factor is skipped.
	DegenerateEpsilon = 1e-6
	// DefaultSegments is the number of polyline segments in a rendered curve.
	DefaultSegments = 1000
)

// Evaluate returns the Lagrange interpolating polynomial through points at x:
//
//	L(x) = sum_i y_i * prod_{j != i} (x - x_j) / (x_i - x_j)
//
// A factor whose denominator is smaller than DegenerateEpsilon in magnitude is
// skipped (treated as 1), so the result stays finite but loses accuracy near
// crowded nodes. A single point gives the constant y_0; no points give 0.
func Evaluate(points []document.Point, x float64) float64 {
	var result float64
	for i, pi := range points {
		term := pi.Y
		for j, pj := range points {
			if j == i {
				continue
			}
			denom := pi.X - pj.X
			if math.Abs(denom) < DegenerateEpsilon {
				continue
			}
			term *= (x - pj.X) / denom
		}
		result += term
	}
	return result
}

// Sample evaluates the polynomial at segments+1 evenly spaced x across the
// view window, from XMin to XMax inclusive.
func Sample(points []document.Point, view document.View, segments int) []document.Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]document.Point, segments+1)
	span := view.XMax - view.XMin
	for k := 0; k <= segments; k++ {
		x := view.XMin + span*float64(k)/float64(segments)
		out[k] = document.Point{X: x, Y: Evaluate(points, x)}
	}
	return out
}
