// Package pointer turns polled mouse state into the discrete pointer events
// a browser would deliver: press, move, release, click and context menu.
package pointer

// Sink receives pointer events in canvas pixel coordinates. Each method
// reports whether the visible state changed. *engine.Engine implements it.
type Sink interface {
	PointerDown(sx, sy float64) bool
	PointerMove(sx, sy float64) bool
	PointerUp(sx, sy float64) bool
	Click(sx, sy float64) bool
	ContextMenu(sx, sy float64) bool
}

// State is the mouse as sampled once per tick.
type State struct {
	X, Y  float64
	Left  bool
	Right bool
}

// Translator diffs successive States and forwards the resulting events.
type Translator struct {
	sink    Sink
	prev    State
	started bool
}

func NewTranslator(sink Sink) *Translator {
	return &Translator{sink: sink}
}

// Step feeds one sample. Events are delivered in browser order: move, then
// press, then release followed by click, then context menu. It returns true
// when any event changed the sink's state.
func (t *Translator) Step(s State) bool {
	prev := t.prev
	if !t.started {
		prev = State{X: s.X, Y: s.Y}
		t.started = true
	}
	t.prev = s

	changed := false
	if s.X != prev.X || s.Y != prev.Y {
		changed = t.sink.PointerMove(s.X, s.Y) || changed
	}
	if s.Left && !prev.Left {
		changed = t.sink.PointerDown(s.X, s.Y) || changed
	}
	if !s.Left && prev.Left {
		changed = t.sink.PointerUp(s.X, s.Y) || changed
		changed = t.sink.Click(s.X, s.Y) || changed
	}
	if s.Right && !prev.Right {
		changed = t.sink.ContextMenu(s.X, s.Y) || changed
	}
	return changed
}
