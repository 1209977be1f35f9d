package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks open connections per user id. A user may have several tabs
// open; all of them get every push.
type Hub struct {
	Clients map[string]map[*websocket.Conn]*Client
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[string]map[*websocket.Conn]*Client),
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[userID]; !ok {
		h.Clients[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[userID][conn] = client

	go h.readPump(userID, conn)
	go h.writePump(userID, conn)
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, userID)
		}
	}
}

// BroadcastToUser sends data to every open connection of one user. Slow
// clients are skipped rather than blocking the caller.
func (h *Hub) BroadcastToUser(userID string, messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetStats returns connection counts for the health endpoint.
func (h *Hub) GetStats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	connections := 0
	for _, clients := range h.Clients {
		connections += len(clients)
	}
	return map[string]interface{}{
		"users":       len(h.Clients),
		"connections": connections,
	}
}

type badgeUpdate struct {
	Type        string `json:"type"`
	UnreadCount int64  `json:"unread_count"`
}

// SendBadgeUpdate pushes the unread-notification count to a user.
func SendBadgeUpdate(userID string, count int64) {
	data, err := json.Marshal(badgeUpdate{Type: "badge_update", UnreadCount: count})
	if err != nil {
		zap.L().Error("marshal badge update failed", zap.Error(err))
		return
	}
	H.BroadcastToUser(userID, websocket.TextMessage, data)
}

func (h *Hub) readPump(userID string, conn *websocket.Conn) {
	defer h.Unregister(userID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(userID string, conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.Clients[userID][conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
