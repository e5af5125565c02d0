package engine

import "math"

// DragState identifies the point being dragged, if any.
type DragState struct {
	Active bool `json:"active"`
	Index  int  `json:"index"`
}

// Controller turns pointer events into point set mutations. It has two
// states, Idle and Dragging(index). Every handler reports whether the point
// set or the drag state changed, i.e. whether a redraw is due.
type Controller struct {
	points    *PointSet
	viewport  Viewport
	hitRadius float64
	drag      DragState

	// dragMoved is set once the current press has moved a point. The click
	// that the same press produces is consumed instead of adding a point.
	dragMoved bool
}

// NewController returns an idle controller over points.
func NewController(points *PointSet, vp Viewport) *Controller {
	return &Controller{
		points:    points,
		viewport:  vp,
		hitRadius: DefaultHitRadius,
		drag:      DragState{Index: -1},
	}
}

// Drag returns the current drag state.
func (c *Controller) Drag() DragState {
	return c.drag
}

// PointerDown starts a drag if the press lands on a point.
func (c *Controller) PointerDown(sx, sy float64) bool {
	c.dragMoved = false
	if !finite(sx, sy) {
		return false
	}
	idx := c.points.HitTest(c.viewport, sx, sy, c.hitRadius)
	if idx < 0 {
		return false
	}
	c.drag = DragState{Active: true, Index: idx}
	return true
}

// PointerMove moves the dragged point to the pointer. It is a no-op while idle.
func (c *Controller) PointerMove(sx, sy float64) bool {
	if !c.drag.Active || !finite(sx, sy) {
		return false
	}
	if !c.points.MoveTo(c.drag.Index, c.viewport.ToMath(sx, sy)) {
		return false
	}
	c.dragMoved = true
	return true
}

// PointerUp ends a drag.
func (c *Controller) PointerUp(sx, sy float64) bool {
	if !c.drag.Active {
		return false
	}
	c.drag = DragState{Index: -1}
	return true
}

// Click adds a point at the pointer when idle. A click produced by a press
// that dragged a point is swallowed; a press on a point that never moved
// still adds one.
func (c *Controller) Click(sx, sy float64) bool {
	if c.drag.Active || !finite(sx, sy) {
		return false
	}
	if c.dragMoved {
		c.dragMoved = false
		return false
	}
	c.points.Add(c.viewport.ToMath(sx, sy))
	return true
}

// ContextMenu removes the first point under the pointer, if any.
func (c *Controller) ContextMenu(sx, sy float64) bool {
	if !finite(sx, sy) {
		return false
	}
	idx := c.points.HitTest(c.viewport, sx, sy, c.hitRadius)
	if idx < 0 {
		return false
	}
	c.points.Remove(idx)

	// Keep an in-flight drag pointing at the same point.
	if c.drag.Active {
		switch {
		case idx == c.drag.Index:
			c.drag = DragState{Index: -1}
		case idx < c.drag.Index:
			c.drag.Index--
		}
	}
	return true
}

// Reset returns the controller to Idle.
func (c *Controller) Reset() {
	c.drag = DragState{Index: -1}
	c.dragMoved = false
}

// finite rejects pointer coordinates that would store a NaN or Inf point.
func finite(sx, sy float64) bool {
	return !math.IsNaN(sx) && !math.IsNaN(sy) && !math.IsInf(sx, 0) && !math.IsInf(sy, 0)
}
