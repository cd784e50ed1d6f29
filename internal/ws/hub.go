package ws

import (
	"encoding/json"
	"time"

	"ambilight-agent/internal/model"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1024
)

// Hub fans preview events out to every connected browser client.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

func NewHub() *Hub {
	return &Hub{
		clients:    map[*Client]struct{}{},
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// BroadcastEvent queues evt for all clients. It never blocks the caller: when
// the queue is full the event is dropped.
func (h *Hub) BroadcastEvent(evt model.Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Msg("marshal ws event")
		return
	}
	select {
	case h.broadcast <- b:
	default:
		log.Warn().Str("type", evt.Type).Msg("ws broadcast queue full, dropping event")
	}
}

// Write publishes a rendered strip as a strip.frame.updated event.
func (h *Hub) Write(pixels []model.RGB) error {
	now := time.Now().UnixMilli()
	frame := model.StripFrame{
		LedCount:  len(pixels),
		Pixels:    append([]model.RGB(nil), pixels...),
		CreatedAt: now,
	}
	h.BroadcastEvent(model.Event{Type: "strip.frame.updated", Payload: frame, CreatedAt: now})
	return nil
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	msgType int
	onClose func()
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan []byte, 128), msgType: websocket.TextMessage}
}

func NewClientWithClose(conn *websocket.Conn, msgType int, onClose func()) *Client {
	return &Client{conn: conn, send: make(chan []byte, 128), msgType: msgType, onClose: onClose}
}

func (c *Client) ReadPump() {
	defer func() {
		if c.hub != nil {
			c.hub.unregister <- c
		}
		if c.onClose != nil {
			c.onClose()
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(c.msgType, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
