package session

import (
	"encoding/json"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypePointerDown    = "pointer.down"
	TypePointerMove    = "pointer.move"
	TypePointerUp      = "pointer.up"
	TypePointerClick   = "pointer.click"
	TypePointerContext = "pointer.context"
	TypePresetLoad     = "preset.load"
	TypeSessionReset   = "session.reset"
	TypeCursorQuery    = "cursor.query"

	// Server → client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeCursor  = "cursor"
	TypeError   = "error"
)

// PointerPayload carries canvas-relative pixel coordinates.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresetPayload struct {
	Name string `json:"name"`
}

type WelcomePayload struct {
	SessionID string              `json:"sessionId"`
	Viewport  engine.ViewportInfo `json:"viewport"`
	Presets   []string            `json:"presets"`
}

// FramePayload is a full redraw plus the state it was drawn from.
type FramePayload struct {
	Version  uint64               `json:"version"`
	Commands []engine.DrawCommand `json:"commands"`
	Points   []document.Point     `json:"points"`
	Drag     engine.DragState     `json:"drag"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
	Seq    int64  `json:"seq,omitempty"` // seq of the offending message
}
