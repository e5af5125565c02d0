package engine

import (
	"encoding/json"
	"log/slog"

	"github.com/polyplot/polyplot/internal/document"
)

// Engine owns the state of one interactive plot: the fixed viewport, the
// point set and the input controller. It processes pointer events from the
// frontend and answers render queries.
//
// An Engine is not safe for concurrent use; it must be driven from a single
// goroutine, the way a browser drives its event callbacks.
type Engine struct {
	viewport   Viewport
	points     *PointSet
	controller *Controller
	segments   int

	// Cached draw commands, rebuilt when dirty
	frame []DrawCommand
	dirty bool

	// Incremented on every visible change
	version uint64
}

// NewEngine creates an engine for a view window drawn on a canvas of the given size.
func NewEngine(view document.View, canvas document.Canvas) *Engine {
	vp := NewViewport(view, canvas)
	points := NewPointSet()
	return &Engine{
		viewport:   vp,
		points:     points,
		controller: NewController(points, vp),
		segments:   DefaultSegments,
		dirty:      true,
	}
}

// --- Commands (frontend → engine) ---

// PointerDown handles a primary-button press at screen coordinates.
func (e *Engine) PointerDown(sx, sy float64) bool {
	return e.touch(e.controller.PointerDown(sx, sy))
}

// PointerMove handles pointer motion at screen coordinates.
func (e *Engine) PointerMove(sx, sy float64) bool {
	return e.touch(e.controller.PointerMove(sx, sy))
}

// PointerUp handles a primary-button release at screen coordinates.
func (e *Engine) PointerUp(sx, sy float64) bool {
	return e.touch(e.controller.PointerUp(sx, sy))
}

// Click handles a primary click at screen coordinates.
func (e *Engine) Click(sx, sy float64) bool {
	return e.touch(e.controller.Click(sx, sy))
}

// ContextMenu handles a secondary click at screen coordinates.
func (e *Engine) ContextMenu(sx, sy float64) bool {
	return e.touch(e.controller.ContextMenu(sx, sy))
}

// LoadPoints replaces the point set, applying the usual x separation, and
// cancels any drag.
func (e *Engine) LoadPoints(pts []document.Point) {
	e.points.Replace(pts)
	e.controller.Reset()
	e.touch(true)
}

// LoadPreset replaces the point set with a built-in preset.
func (e *Engine) LoadPreset(name string) error {
	pts, err := document.LookupPreset(name)
	if err != nil {
		return err
	}
	e.LoadPoints(pts)
	return nil
}

// Reset removes every point and cancels any drag.
func (e *Engine) Reset() {
	e.points.Clear()
	e.controller.Reset()
	e.touch(true)
}

func (e *Engine) touch(changed bool) bool {
	if changed {
		e.dirty = true
		e.version++
	}
	return changed
}

// --- Queries (frontend ← engine) ---

// Frame returns the draw commands for the current state.
func (e *Engine) Frame() []DrawCommand {
	if e.dirty || e.frame == nil {
		e.frame = CompileFrame(e.viewport, e.points.Points(), e.segments)
		e.dirty = false
	}
	return e.frame
}

// Render returns the current draw commands as JSON.
func (e *Engine) Render() string {
	result, err := DrawCommandsToJSON(e.Frame())
	if err != nil {
		slog.Error("encode frame", "error", err, "version", e.version)
	}
	return result
}

// Version increases whenever the rendered output may have changed.
func (e *Engine) Version() uint64 {
	return e.version
}

// HitTest returns the index of the first point under screen coordinates, or -1.
func (e *Engine) HitTest(sx, sy float64) int {
	return e.points.HitTest(e.viewport, sx, sy, DefaultHitRadius)
}

// Evaluate returns the interpolating polynomial at math-space x.
func (e *Engine) Evaluate(x float64) float64 {
	return Evaluate(e.points.Points(), x)
}

// Points returns a copy of the current points in insertion order.
func (e *Engine) Points() []document.Point {
	return e.points.Points()
}

// Drag returns the controller's drag state.
func (e *Engine) Drag() DragState {
	return e.controller.Drag()
}

// Viewport returns the engine's coordinate mapping.
func (e *Engine) Viewport() Viewport {
	return e.viewport
}

// Cursor describes the math-space position under the pointer.
type Cursor struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Value    *float64 `json:"value,omitempty"` // L(x), absent with no points
	HitIndex int      `json:"hitIndex"`
}

// CursorAt maps screen coordinates to math space and evaluates the curve there.
func (e *Engine) CursorAt(sx, sy float64) Cursor {
	p := e.viewport.ToMath(sx, sy)
	c := Cursor{X: p.X, Y: p.Y, HitIndex: e.HitTest(sx, sy)}
	if e.points.Len() > 0 {
		v := e.Evaluate(p.X)
		c.Value = &v
	}
	return c
}

// GetCursor returns CursorAt as JSON.
func (e *Engine) GetCursor(sx, sy float64) string {
	data, err := json.Marshal(e.CursorAt(sx, sy))
	if err != nil {
		return "{}"
	}
	return string(data)
}

// State is the engine's observable state.
type State struct {
	Points []document.Point `json:"points"`
	Drag   DragState        `json:"drag"`
}

// GetState returns the points and drag state as JSON.
func (e *Engine) GetState() string {
	data, err := json.Marshal(State{Points: e.Points(), Drag: e.Drag()})
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ViewportInfo carries the mapping so a frontend can convert coordinates locally.
type ViewportInfo struct {
	View    document.View `json:"view"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Matrix  []float64     `json:"matrix"`  // math → screen
	Inverse []float64     `json:"inverse"` // screen → math
}

// GetViewport returns the viewport description.
func (e *Engine) GetViewport() ViewportInfo {
	m := e.viewport.Matrix()
	return ViewportInfo{
		View:    e.viewport.View(),
		Width:   e.viewport.Width(),
		Height:  e.viewport.Height(),
		Matrix:  m.ToSlice(),
		Inverse: m.Invert().ToSlice(),
	}
}

// Snapshot captures the plot as a self-contained document.
func (e *Engine) Snapshot() document.Snapshot {
	return document.Snapshot{
		View: e.viewport.View(),
		Canvas: document.Canvas{
			Width:  int(e.viewport.Width()),
			Height: int(e.viewport.Height()),
		},
		Points: e.Points(),
	}
}
