// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub manages the connected WebSocket clients, keyed by user email.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client to the Hub.
func (h *Hub) Register(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[email] = conn
	log.Printf("WebSocket client registered: %s", email)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(email string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[email]; ok {
		delete(h.clients, email)
		log.Printf("WebSocket client unregistered: %s", email)
	}
}

// Send delivers a message to one client. An offline client is not an error.
func (h *Hub) Send(email string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[email]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", email)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}

// Notify marshals the event and sends it to the given user, logging failures.
func (h *Hub) Notify(email string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal WebSocket event: %v", err)
		return
	}
	if err := h.Send(email, payload); err != nil {
		log.Printf("Failed to send WebSocket event to %s: %v", email, err)
	}
}
