// services/feed.go - Live Activity Feed Hub
package services

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// Feed event types
const (
	FeedEventWalkCompleted     = "walk_completed"
	FeedEventAchievementEarned = "achievement_earned"
)

// FeedEvent is pushed to connected friends when something happens.
type FeedEvent struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

// FeedHub tracks websocket subscribers by user id and fans events out to
// them. Delivery is best effort: a client that cannot be written to is
// dropped, never waited on.
type FeedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*websocket.Conn]string)}
}

// Register subscribes a connection for the given user.
func (h *FeedHub) Register(conn *websocket.Conn, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = userID
}

// Unregister removes a connection.
func (h *FeedHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Subscribers returns the number of connected clients.
func (h *FeedHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastTo delivers the event to every connected client in userIDs.
func (h *FeedHub) BroadcastTo(userIDs []string, event FeedEvent) {
	if len(userIDs) == 0 {
		return
	}
	targets := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, userID := range h.clients {
		if !targets[userID] {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("feed: dropping slow client for user %s: %v", userID, err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}
