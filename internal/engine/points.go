package engine

import (
	"math"

	"github.com/polyplot/polyplot/internal/document"
)

const (
	// AddEpsilon is the x-separation enforced when a point is added.
	AddEpsilon = 1e-5
	// MoveEpsilon is the x-separation enforced when a point is dragged.
	MoveEpsilon = 1e-6
	// DefaultHitRadius is the pick distance in pixels, equal to the marker radius.
	DefaultHitRadius = 5.0
)

// PointSet is the ordered collection of user-placed points. Order is
// insertion order and is never sorted.
//
// Near-duplicate x-coordinates are separated by nudging the new or moved
// point in a single pass over the other points. The pass is not repeated, so
// three or more points crowded into one epsilon band can still end up with
// colliding x after adjustment.
type PointSet struct {
	points []document.Point
}

// NewPointSet returns an empty point set.
func NewPointSet() *PointSet {
	return &PointSet{}
}

// Len returns the number of points.
func (ps *PointSet) Len() int {
	return len(ps.points)
}

// At returns the point at index i.
func (ps *PointSet) At(i int) (document.Point, bool) {
	if i < 0 || i >= len(ps.points) {
		return document.Point{}, false
	}
	return ps.points[i], true
}

// Points returns a copy of the points in insertion order.
func (ps *PointSet) Points() []document.Point {
	out := make([]document.Point, len(ps.points))
	copy(out, ps.points)
	return out
}

// Add appends p and returns its index. Each existing point within AddEpsilon
// of p's (possibly already nudged) x pushes p right by AddEpsilon.
func (ps *PointSet) Add(p document.Point) int {
	for _, q := range ps.points {
		if math.Abs(p.X-q.X) < AddEpsilon {
			p.X += AddEpsilon
		}
	}
	ps.points = append(ps.points, p)
	return len(ps.points) - 1
}

// MoveTo overwrites the point at index i with p, then nudges it right by
// MoveEpsilon for each other point it lands within MoveEpsilon of.
// It reports false if i is out of range.
func (ps *PointSet) MoveTo(i int, p document.Point) bool {
	if i < 0 || i >= len(ps.points) {
		return false
	}
	for j, q := range ps.points {
		if j != i && math.Abs(p.X-q.X) < MoveEpsilon {
			p.X += MoveEpsilon
		}
	}
	ps.points[i] = p
	return true
}

// Remove deletes the point at index i, shifting later points down by one.
// It reports false if i is out of range.
func (ps *PointSet) Remove(i int) bool {
	if i < 0 || i >= len(ps.points) {
		return false
	}
	ps.points = append(ps.points[:i], ps.points[i+1:]...)
	return true
}

// Clear removes every point.
func (ps *PointSet) Clear() {
	ps.points = nil
}

// Replace clears the set and adds pts in order, applying the Add separation rule.
func (ps *PointSet) Replace(pts []document.Point) {
	ps.Clear()
	for _, p := range pts {
		ps.Add(p)
	}
}

// HitTest returns the first index, in insertion order, whose screen projection
// lies strictly within radius pixels of (sx, sy), or -1.
func (ps *PointSet) HitTest(vp Viewport, sx, sy, radius float64) int {
	for i, p := range ps.points {
		px, py := vp.ToScreen(p)
		if math.Hypot(sx-px, sy-py) < radius {
			return i
		}
	}
	return -1
}
