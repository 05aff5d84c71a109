package websocket

import (
	"encoding/json"
	"sync"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
)

// Client is one websocket session of the live community feed. A user
// can hold several sessions at once (phone and laptop).
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// FeedEvent is the wire envelope pushed to feed subscribers
type FeedEvent struct {
	Type     string                   `json:"type"`
	Activity *model.CommunityActivity `json:"activity"`
}

// Hub fans freshly recorded community activities out to every connected
// feed subscriber. The feed is one-way; clients never publish through
// the socket.
type Hub struct {
	// UserID -> sessions, multi-device
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run owns the client registry. Must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Feed client connected", map[string]interface{}{
				"user_id":  client.UserID,
				"sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			found := false
			if sessions, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, c := range sessions {
					if c == client {
						found = true
						continue
					}
					remaining = append(remaining, c)
				}
				if found {
					if len(remaining) == 0 {
						delete(h.clients, client.UserID)
					} else {
						h.clients[client.UserID] = remaining
					}
					// Close only on the first unregister; the broadcast
					// path and the read pump can both enqueue the same
					// client.
					close(client.Send)
				}
			}
			h.mu.Unlock()
			if found {
				logger.Info("Feed client disconnected", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, sessions := range h.clients {
				for _, client := range sessions {
					select {
					case client.Send <- message:
					default:
						// Stalled client, drop it without blocking the feed
						go h.Unregister(client)
						logger.Warn("Feed client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastActivity pushes a new feed entry to every subscriber. A full
// broadcast queue drops the event; the feed row itself is already
// persisted.
func (h *Hub) BroadcastActivity(activity *model.CommunityActivity) {
	data, err := json.Marshal(FeedEvent{
		Type:     "activity",
		Activity: activity,
	})
	if err != nil {
		logger.Error("Failed to marshal feed event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Feed broadcast channel full, event dropped", map[string]interface{}{
			"activity_id": activity.ID,
		})
	}
}

// Register enqueues a client registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister enqueues a client removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
