// handlers/feed.go - Live Activity Feed
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedUpgrade gates the websocket route: only upgrade requests that carry a
// user_id get through.
func FeedUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if c.Query("user_id") == "" {
		return fiber.ErrBadRequest
	}
	c.Locals("user_id", c.Query("user_id"))
	return c.Next()
}

// FeedSocket holds a client connection open and registers it with the hub.
// Events are pushed by the hub; the read loop only exists to detect close.
// GET /ws/feed?user_id=
var FeedSocket = websocket.New(func(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	if userID == "" {
		conn.Close()
		return
	}

	feedHub.Register(conn, userID)
	defer feedHub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})
