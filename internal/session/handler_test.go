package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/polyplot/polyplot/internal/document"
	"github.com/polyplot/polyplot/internal/engine"
	"github.com/polyplot/polyplot/internal/typeid"
)

func newTestServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(func() *engine.Engine {
		return engine.NewEngine(document.DefaultView(), document.DefaultCanvas())
	})
	go hub.Run()

	srv := httptest.NewServer(Handler(hub, nil))
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return msg
}

func writeMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, msg *Message) {
	t.Helper()
	data, _ := json.Marshal(msg)
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestHandlerSession(t *testing.T) {
	_, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(1 << 20)

	welcome := readMessage(t, ctx, conn)
	if welcome.Type != TypeWelcome {
		t.Fatalf("first message = %+v", welcome)
	}
	if err := typeid.Validate(welcome.SessionID, typeid.PrefixSession); err != nil {
		t.Fatalf("session id: %v", err)
	}
	var wp WelcomePayload
	if err := json.Unmarshal(welcome.Payload, &wp); err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	if wp.Viewport.Width != 600 || len(wp.Presets) == 0 {
		t.Fatalf("welcome payload = %+v", wp)
	}

	if initial := readMessage(t, ctx, conn); initial.Type != TypeFrame {
		t.Fatalf("second message type = %q, want frame", initial.Type)
	}

	writeMessage(t, ctx, conn, pointerMsg(TypePointerClick, 360, 210))
	frame := readMessage(t, ctx, conn)
	var fp FramePayload
	if err := json.Unmarshal(frame.Payload, &fp); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if len(fp.Points) != 1 || fp.Points[0] != (document.Point{X: 2, Y: 3}) {
		t.Fatalf("points = %+v", fp.Points)
	}

	writeMessage(t, ctx, conn, &Message{Type: "bogus", Seq: 42})
	errMsg := readMessage(t, ctx, conn)
	if errMsg.Type != TypeError {
		t.Fatalf("reply to bogus message = %+v", errMsg)
	}
}

func TestHandlerSessionsArePrivate(t *testing.T) {
	hub, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial a: %v", err)
	}
	defer a.Close(websocket.StatusNormalClosure, "")
	a.SetReadLimit(1 << 20)
	b, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	defer b.Close(websocket.StatusNormalClosure, "")
	b.SetReadLimit(1 << 20)

	wa := readMessage(t, ctx, a)
	readMessage(t, ctx, a)
	wb := readMessage(t, ctx, b)
	readMessage(t, ctx, b)
	if wa.SessionID == wb.SessionID {
		t.Fatal("two connections share a session id")
	}

	writeMessage(t, ctx, a, pointerMsg(TypePointerClick, 300, 300))
	readMessage(t, ctx, a)

	// b's plot is untouched: a reset on b reports an empty frame.
	writeMessage(t, ctx, b, &Message{Type: TypeSessionReset})
	var fp FramePayload
	json.Unmarshal(readMessage(t, ctx, b).Payload, &fp)
	if len(fp.Points) != 0 {
		t.Fatalf("b sees points from a: %+v", fp.Points)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 2 {
		t.Fatalf("hub counts %d clients, want 2", hub.Count())
	}
}
