// Package ws pushes catalog events to connected admin clients.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Lanterman/online-store/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CommentEvent is broadcast whenever a comment or reply is created.
type CommentEvent struct {
	ProductSlug string    `json:"product_slug"`
	CommentID   uint      `json:"comment_id"`
	ParentID    *uint     `json:"parent_id"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Handle upgrades the request and keeps the connection registered until
// the peer goes away. Clients only listen; inbound messages are drained.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			break
		}
	}
}

// BroadcastComment sends the event to every connected client. Safe to call
// on a nil hub.
func (h *Hub) BroadcastComment(event CommentEvent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteJSON(event); err != nil {
			logger.Log.Warn("ws: dropping client", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
}
