// Package ws is the live-push transport: one websocket hub holding every
// connected client, keyed by user id. The hub is the Pusher consumed by
// fan-out and the writer of the presence registry.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chatapp/internal/common"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	registry   common.PresenceRegistry
	mu         sync.RWMutex
	done       chan struct{}
}

type Client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
	hub    *Hub
}

var _ common.Pusher = (*Hub)(nil)

func NewHub(registry common.PresenceRegistry) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		registry:   registry,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

			if err := h.registry.SetOnline(context.Background(), client.userID); err != nil {
				log.Printf("failed to mark user %s online: %v", client.userID, err)
			}
			log.Printf("✅ WebSocket client registered for user %s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.userID)
					if err := h.registry.SetOffline(context.Background(), client.userID); err != nil {
						log.Printf("failed to mark user %s offline: %v", client.userID, err)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("❌ WebSocket client unregistered for user %s", client.userID)

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Shutdown() {
	close(h.done)
}

// Push delivers one event to every connection the user holds. A slow client
// whose send queue is full is dropped rather than blocking the hub.
func (h *Hub) Push(userID string, event common.PushEvent) (bool, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return false, err
	}

	// Sends stay under the read lock: Run closes a client's send channel
	// only under the write lock, after removing it from the map, so a
	// client reachable here cannot have a closed channel.
	h.mu.RLock()
	delivered := false
	var stale []*Client
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
			delivered = true
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		log.Printf("send queue full for user %s, dropping connection", userID)
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}
	return delivered, nil
}

// ServeWS upgrades an authenticated request to a websocket connection and
// starts the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
		hub:    h,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.hub.registry.Refresh(context.Background(), c.userID); err != nil {
			log.Printf("presence refresh failed for user %s: %v", c.userID, err)
		}
		return nil
	})

	for {
		// Inbound frames are ignored; clients talk to the REST API.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error for user %s: %v", c.userID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
