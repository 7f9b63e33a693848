package live

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks connected clients and indexes their sessions by id. Sessions
// are never shared between clients.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client  // clientID -> client
	sessions   map[string]*Session // sessionID -> session
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		sessions:   make(map[string]*Session),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
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

// Stop ends Run and closes every open connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, c := range h.clients {
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
	})
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

// Session returns the live session with the given id.
func (h *Hub) Session(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.sessions[client.Session.ID()] = client.Session
	h.mu.Unlock()

	client.Send(client.Session.Welcome(client.ClientID))
	client.Send(client.Session.FrameMessage())

	slog.Info("client joined", "client", client.ClientID, "session", client.Session.ID())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	delete(h.sessions, client.Session.ID())
	close(client.send)
	h.mu.Unlock()

	slog.Info("client left", "client", client.ClientID, "session", client.Session.ID())
}
