// Package websocket pushes live day updates to connected clients.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // restricted by the deployment proxy
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is one connected spectator.
type Client struct {
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
	LastSeen time.Time
}

// Hub fans simulation updates out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mutex      sync.RWMutex
}

// Message wraps every frame sent to clients.
type Message struct {
	Type      string      `json:"type"` // "connected", "day_update", "pong"
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates the broadcast hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run drives registration and fan-out; call in its own goroutine.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case data := <-h.broadcast:
			h.fanOut(data)
		case <-ticker.C:
			h.dropStaleClients()
		}
	}
}

// BroadcastJSON queues a day update for every client.
func (h *Hub) BroadcastJSON(v interface{}) {
	data, err := json.Marshal(&Message{Type: "day_update", Data: v, Timestamp: time.Now()})
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal websocket message")
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Websocket broadcast queue full, dropping update")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	h.logger.WithField("total_clients", total).Info("Websocket client connected")

	welcome, _ := json.Marshal(&Message{
		Type:      "connected",
		Data:      map[string]interface{}{"message": "Connected to league feed"},
		Timestamp: time.Now(),
	})
	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		h.logger.WithField("total_clients", len(h.clients)).Info("Websocket client disconnected")
	}
}

func (h *Hub) fanOut(data []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients {
		h.sendToClient(client, data)
	}
}

func (h *Hub) sendToClient(client *Client, data []byte) {
	select {
	case client.Send <- data:
		client.LastSeen = time.Now()
	default:
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) dropStaleClients() {
	h.mutex.RLock()
	var stale []*Client
	now := time.Now()
	for client := range h.clients {
		if now.Sub(client.LastSeen) > 2*time.Minute {
			stale = append(stale, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}
	if len(stale) > 0 {
		h.logger.WithField("stale_clients", len(stale)).Debug("Removed stale websocket clients")
	}
}

// ConnectionCount reports active clients for the metrics handler.
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades a gin request into a hub client.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade websocket connection")
		return
	}

	client := &Client{
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      h,
		LastSeen: time.Now(),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastSeen = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("Websocket read error")
			}
			break
		}
		c.handleIncoming(message)
		c.LastSeen = time.Now()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.WithError(err).Error("Failed to write websocket message")
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleIncoming(message []byte) {
	var clientMsg map[string]interface{}
	if err := json.Unmarshal(message, &clientMsg); err != nil {
		c.Hub.logger.WithError(err).Warn("Failed to parse client message")
		return
	}
	if msgType, ok := clientMsg["type"].(string); ok && msgType == "ping" {
		pong, _ := json.Marshal(&Message{
			Type:      "pong",
			Data:      map[string]interface{}{"timestamp": time.Now().Unix()},
			Timestamp: time.Now(),
		})
		c.Hub.sendToClient(c, pong)
	}
}
