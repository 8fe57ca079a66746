// Package websocket pushes live events (cleanings, achievement unlocks,
// tree edits) to connected dashboard clients.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is one real-time notification. The payload is event specific:
// item_cleaned carries the log entry, achievement_unlocked the new codes.
type Event struct {
	Type    string `json:"type"`
	GroupID int64  `json:"group_id,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Event types.
const (
	EventItemCleaned       = "item_cleaned"
	EventItemCreated       = "item_created"
	EventItemUpdated       = "item_updated"
	EventItemDeleted       = "item_deleted"
	EventItemMoved         = "item_moved"
	EventAchievementUnlock = "achievement_unlocked"
)

// Hub maintains the set of active clients and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client. Clients that cannot
// keep up have the event dropped rather than blocking the sender.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
