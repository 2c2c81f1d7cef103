package sse

import (
	"fmt"
	"log"
	"sync"
)

// Event represents a Server-Sent Event
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client represents a connected SSE client
type Client struct {
	ID     string
	UserID uint
	Events chan Event
}

// GlobalHub is the singleton SSE Hub instance
var GlobalHub = NewHub()

// Hub manages all SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("[SSE] Client registered: id=%s user=%d (total: %d)", client.ID, client.UserID, len(h.clients))
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		log.Printf("[SSE] Client unregistered: id=%s (total: %d)", clientID, len(h.clients))
	}
}

// Broadcast sends an event to all connected clients. Best effort: clients
// with a full buffer are skipped rather than blocked on.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			log.Printf("[SSE] Client %s buffer full, skipping event", client.ID)
		}
	}
}

// PublishEntityChanged tells connected clients that a collection changed and
// should be re-fetched. Replaces the old fixed-interval client polling.
func PublishEntityChanged(collection, action string, id uint) {
	data := fmt.Sprintf(`{"collection":"%s","action":"%s","id":%d}`, collection, action, id)
	GlobalHub.Broadcast(Event{
		EventType: "entity_changed",
		Data:      data,
	})
}

// PublishSnapshot is the periodic refresh tick for dashboard surfaces.
func PublishSnapshot(data string) {
	GlobalHub.Broadcast(Event{
		EventType: "snapshot",
		Data:      data,
	})
}
