package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Session is one user's plot. It wraps a private engine and is driven by a
// single goroutine, the connection's read pump.
type Session struct {
	ID     string
	engine *engine.Engine
	seq    int64
}

// NewSession creates a session around eng.
func NewSession(id string, eng *engine.Engine) *Session {
	return &Session{ID: id, engine: eng}
}

// Engine returns the session's engine.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Welcome builds the greeting sent when a connection opens.
func (s *Session) Welcome() *Message {
	return s.message(TypeWelcome, WelcomePayload{
		SessionID: s.ID,
		Viewport:  s.engine.GetViewport(),
		Presets:   document.PresetNames(),
	})
}

// FrameMessage builds a full redraw of the current state.
func (s *Session) FrameMessage() *Message {
	return s.message(TypeFrame, FramePayload{
		Version:  s.engine.Version(),
		Commands: s.engine.Frame(),
		Points:   s.engine.Points(),
		Drag:     s.engine.Drag(),
	})
}

// Apply runs one client message against the engine. It returns the reply to
// send, or nil when nothing changed.
func (s *Session) Apply(msg *Message) (*Message, error) {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerClick, TypePointerContext:
		return s.applyPointer(msg)
	case TypePresetLoad:
		return s.applyPreset(msg)
	case TypeSessionReset:
		s.engine.Reset()
		return s.FrameMessage(), nil
	case TypeCursorQuery:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid cursor payload: %w", err)
		}
		return s.message(TypeCursor, s.engine.CursorAt(p.X, p.Y)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, msg.Type)
	}
}

func (s *Session) applyPointer(msg *Message) (*Message, error) {
	var p PointerPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return nil, fmt.Errorf("invalid pointer payload: %w", err)
	}

	var changed bool
	switch msg.Type {
	case TypePointerDown:
		changed = s.engine.PointerDown(p.X, p.Y)
	case TypePointerMove:
		changed = s.engine.PointerMove(p.X, p.Y)
	case TypePointerUp:
		changed = s.engine.PointerUp(p.X, p.Y)
	case TypePointerClick:
		changed = s.engine.Click(p.X, p.Y)
	case TypePointerContext:
		changed = s.engine.ContextMenu(p.X, p.Y)
	}

	if !changed {
		return nil, nil
	}
	return s.FrameMessage(), nil
}

func (s *Session) applyPreset(msg *Message) (*Message, error) {
	var p PresetPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return nil, fmt.Errorf("invalid preset payload: %w", err)
	}
	if err := s.engine.LoadPreset(p.Name); err != nil {
		return nil, err
	}
	return s.FrameMessage(), nil
}

// ErrorMessage reports a failed client message without closing the session.
func (s *Session) ErrorMessage(cause *Message, err error) *Message {
	return s.message(TypeError, ErrorPayload{Reason: err.Error(), Seq: cause.Seq})
}

func (s *Session) message(typ string, payload interface{}) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(ErrorPayload{Reason: "encode " + typ + ": " + err.Error()})
		typ = TypeError
	}
	s.seq++
	return &Message{
		Type:      typ,
		SessionID: s.ID,
		Seq:       s.seq,
		Payload:   data,
	}
}
