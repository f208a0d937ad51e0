package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// messageChannel fans messages out across instances via redis so a
	// recipient connected to another node still gets delivery.
	messageChannel = "fitlynq:messages"
)

// WireMessage is the envelope pushed to websocket clients and published
// on the redis channel.
type WireMessage struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"senderId"`
	RecipientID uint      `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uint
	send   chan []byte
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client

	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
	}
}

// Run owns the client registry. Call it once from a goroutine.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.consumeRedis(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			conns := h.clients[client.userID]
			for i, c := range conns {
				if c == client {
					h.clients[client.userID] = append(conns[:i], conns[i+1:]...)
					close(c.send)
					break
				}
			}
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) consumeRedis(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, messageChannel)
	defer sub.Close()
	for msg := range sub.Channel() {
		var wire WireMessage
		if err := json.Unmarshal([]byte(msg.Payload), &wire); err != nil {
			log.Printf("hub: bad message payload: %v", err)
			continue
		}
		h.deliverLocal(&wire)
	}
}

// Publish pushes a message to all instances. Without redis it degrades
// to local-only delivery.
func (h *Hub) Publish(ctx context.Context, wire *WireMessage) {
	if h.rdb != nil {
		payload, err := json.Marshal(wire)
		if err == nil {
			if err := h.rdb.Publish(ctx, messageChannel, payload).Err(); err == nil {
				return
			}
			log.Printf("hub: redis publish failed, delivering locally")
		}
	}
	h.deliverLocal(wire)
}

func (h *Hub) deliverLocal(wire *WireMessage) {
	payload, err := json.Marshal(wire)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[wire.RecipientID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop rather than block the hub.
		}
	}
}

// Attach registers a websocket connection for a user and starts its
// read and write pumps.
func (h *Hub) Attach(conn *websocket.Conn, userID uint) {
	client := &Client{
		hub:    h,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 64),
	}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// Sends go through the REST endpoint; the socket is
		// receive-only, reads just keep the connection alive.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
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
