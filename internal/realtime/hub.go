package realtime

import (
	"encoding/json"
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active client connections and broadcasts content events to
// all of them. Content changes are global, so there is no per-user routing.
// The Hub is constructed explicitly at startup and passed to whoever needs it.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
	}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			// client write failed; the ws handler cleans it up on its side
		}
	}
}

// BroadcastEvent marshals a typed event and broadcasts it.
// Marshal failures are silently dropped; events are best-effort.
func (h *Hub) BroadcastEvent(eventType, articleID, userID string) {
	evt := map[string]any{
		"type":      eventType,
		"articleId": articleID,
		"userId":    userID,
		"version":   1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.Broadcast(bytes)
	}
}
