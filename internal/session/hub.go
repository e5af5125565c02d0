package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/polyplot/polyplot/internal/engine"
	"github.com/polyplot/polyplot/internal/typeid"
)

// EngineFactory builds the engine for a new session.
type EngineFactory func() *engine.Engine

// Hub tracks live connections. Sessions are private to their connection; the
// hub never reads or writes engine state, it only manages lifetimes.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	newEngine  EngineFactory
}

func NewHub(newEngine EngineFactory) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		newEngine:  newEngine,
	}
}

// NewSession creates a fresh session with its own engine.
func (h *Hub) NewSession() *Session {
	return NewSession(typeid.NewSessionID(), h.newEngine())
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stop ends the run loop and closes every open connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.RLock()
		clients := make([]*Client, 0, len(h.clients))
		for _, c := range h.clients {
			clients = append(clients, c)
		}
		h.mu.RUnlock()

		for _, c := range clients {
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		slog.Info("session hub stopped", "closed", len(clients))
	})
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	slog.Info("session opened", "session", client.session.ID, "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	slog.Info("session closed", "session", client.session.ID, "client", client.ClientID)
}
