package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrConnectionGone = errors.New("connection is gone")

const defaultWriteWait = 10 * time.Second

type wsClient struct {
	conn *websocket.Conn
	// gorilla connections support one concurrent writer
	mu sync.Mutex
}

// Hub keeps the open WebSocket connections by connection id.
type Hub struct {
	clients      map[string]*wsClient
	clientsMutex sync.RWMutex
	upgrader     websocket.Upgrader
	writeWait    time.Duration
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*wsClient),
		writeWait: defaultWriteWait,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) add(id string, conn *websocket.Conn) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	if old, ok := h.clients[id]; ok {
		old.conn.Close()
	}
	h.clients[id] = &wsClient{conn: conn}
}

// remove drops id if it still refers to conn.
func (h *Hub) remove(id string, conn *websocket.Conn) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	if c, ok := h.clients[id]; ok && c.conn == conn {
		delete(h.clients, id)
	}
}

func (h *Hub) Len() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Send writes message to the connection with the given id. It returns
// ErrConnectionGone when the connection is not open on this hub. A failed
// write, including a peer stalling past the write wait, closes the connection.
func (h *Hub) Send(_ context.Context, connectionID string, message []byte) error {
	h.clientsMutex.RLock()
	c, ok := h.clients[connectionID]
	h.clientsMutex.RUnlock()
	if !ok {
		return ErrConnectionGone
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	if err == nil {
		err = c.conn.WriteMessage(websocket.TextMessage, message)
	}
	if err != nil {
		c.conn.Close()
		h.remove(connectionID, c.conn)
	}
	return err
}

// CloseAll closes every open connection.
func (h *Hub) CloseAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for id, c := range h.clients {
		c.conn.Close()
		delete(h.clients, id)
	}
}
