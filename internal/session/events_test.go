package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
)

func newTestSession() *Session {
	return NewSession("sess_test", engine.NewEngine(document.DefaultView(), document.DefaultCanvas()))
}

func pointerMsg(typ string, x, y float64) *Message {
	payload, _ := json.Marshal(PointerPayload{X: x, Y: y})
	return &Message{Type: typ, Payload: payload}
}

func decodeFrame(t *testing.T, msg *Message) FramePayload {
	t.Helper()
	if msg == nil {
		t.Fatal("expected a frame, got no reply")
	}
	if msg.Type != TypeFrame {
		t.Fatalf("reply type = %q, want %q", msg.Type, TypeFrame)
	}
	var f FramePayload
	if err := json.Unmarshal(msg.Payload, &f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func TestSessionClickDragDelete(t *testing.T) {
	s := newTestSession()

	if reply, err := s.Apply(pointerMsg(TypePointerDown, 360, 210)); err != nil || reply != nil {
		t.Fatalf("press on empty canvas = %v, %v; want no reply", reply, err)
	}
	s.Apply(pointerMsg(TypePointerUp, 360, 210))

	reply, err := s.Apply(pointerMsg(TypePointerClick, 360, 210))
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	f := decodeFrame(t, reply)
	if len(f.Points) != 1 || f.Points[0] != (document.Point{X: 2, Y: 3}) {
		t.Fatalf("points after click = %+v", f.Points)
	}

	reply, _ = s.Apply(pointerMsg(TypePointerDown, 360, 210))
	if f := decodeFrame(t, reply); !f.Drag.Active {
		t.Fatal("press on point did not start a drag")
	}
	reply, _ = s.Apply(pointerMsg(TypePointerMove, 390, 180))
	if f := decodeFrame(t, reply); f.Points[0] != (document.Point{X: 3, Y: 4}) {
		t.Fatalf("point after move = %+v", f.Points[0])
	}
	s.Apply(pointerMsg(TypePointerUp, 390, 180))
	if reply, _ := s.Apply(pointerMsg(TypePointerClick, 390, 180)); reply != nil {
		t.Fatal("click ending a drag produced a frame")
	}

	reply, _ = s.Apply(pointerMsg(TypePointerContext, 390, 180))
	if f := decodeFrame(t, reply); len(f.Points) != 0 {
		t.Fatalf("points after context click = %+v", f.Points)
	}
}

func TestSessionPresetAndReset(t *testing.T) {
	s := newTestSession()

	payload, _ := json.Marshal(PresetPayload{Name: "cubic"})
	reply, err := s.Apply(&Message{Type: TypePresetLoad, Payload: payload})
	if err != nil {
		t.Fatalf("preset.load: %v", err)
	}
	if f := decodeFrame(t, reply); len(f.Points) != 4 {
		t.Fatalf("cubic preset has %d points", len(f.Points))
	}

	payload, _ = json.Marshal(PresetPayload{Name: "nope"})
	_, err = s.Apply(&Message{Type: TypePresetLoad, Payload: payload, Seq: 7})
	if !errors.Is(err, document.ErrUnknownPreset) {
		t.Fatalf("unknown preset err = %v", err)
	}
	errMsg := s.ErrorMessage(&Message{Seq: 7}, err)
	var ep ErrorPayload
	if err := json.Unmarshal(errMsg.Payload, &ep); err != nil || ep.Seq != 7 || errMsg.Type != TypeError {
		t.Fatalf("error message = %+v (%v)", errMsg, err)
	}

	reply, _ = s.Apply(&Message{Type: TypeSessionReset})
	if f := decodeFrame(t, reply); len(f.Points) != 0 {
		t.Fatalf("points after reset = %+v", f.Points)
	}
}

func TestSessionCursor(t *testing.T) {
	s := newTestSession()
	payload, _ := json.Marshal(PresetPayload{Name: "parabola"})
	s.Apply(&Message{Type: TypePresetLoad, Payload: payload})

	reply, err := s.Apply(pointerMsg(TypeCursorQuery, 360, 210))
	if err != nil {
		t.Fatalf("cursor.query: %v", err)
	}
	var c engine.Cursor
	if err := json.Unmarshal(reply.Payload, &c); err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	if c.X != 2 || c.Value == nil || *c.Value < 3.999 || *c.Value > 4.001 {
		t.Fatalf("cursor = %+v", c)
	}
}

func TestSessionRejectsBadMessages(t *testing.T) {
	s := newTestSession()

	if _, err := s.Apply(&Message{Type: "pointer.teleport"}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("unknown type err = %v", err)
	}
	if _, err := s.Apply(&Message{Type: TypePointerClick, Payload: json.RawMessage(`"x"`)}); err == nil {
		t.Error("malformed pointer payload accepted")
	}
}

func TestSessionSequenceIncreases(t *testing.T) {
	s := newTestSession()
	a := s.Welcome()
	b := s.FrameMessage()
	if a.Seq >= b.Seq || a.SessionID != "sess_test" {
		t.Fatalf("welcome seq %d, frame seq %d", a.Seq, b.Seq)
	}
}
