package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Handler upgrades GET /ws/session to a websocket bound to a new private session.
func Handler(hub *Hub, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		sess := hub.NewSession()
		client := NewClient(hub, conn, sess, uuid.New().String())

		// Queue the greeting before the pumps start so the engine is only
		// ever touched from this goroutine.
		client.Send(sess.Welcome())
		client.Send(sess.FrameMessage())

		hub.Register(client)

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
