package ws

import (
	"sync"

	"ambilight-agent/internal/model"
	"ambilight-agent/internal/output"
	"github.com/gorilla/websocket"
)

// DeviceHub streams every rendered strip to networked strip receivers as a
// binary RGB24 message. Slow receivers are dropped rather than waited for.
type DeviceHub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewDeviceHub() *DeviceHub {
	return &DeviceHub{clients: map[string]map[*Client]struct{}{}}
}

func (h *DeviceHub) Register(deviceID string, conn *websocket.Conn) *Client {
	var c *Client
	c = NewClientWithClose(conn, websocket.BinaryMessage, func() { h.Unregister(deviceID, c) })
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[deviceID]; !ok {
		h.clients[deviceID] = map[*Client]struct{}{}
	}
	h.clients[deviceID][c] = struct{}{}
	return c
}

func (h *DeviceHub) Unregister(deviceID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.clients[deviceID]; ok {
		if _, exist := m[c]; exist {
			delete(m, c)
			close(c.send)
		}
		if len(m) == 0 {
			delete(h.clients, deviceID)
		}
	}
}

func (h *DeviceHub) Devices() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.clients))
	for id := range h.clients {
		out = append(out, id)
	}
	return out
}

func (h *DeviceHub) Write(pixels []model.RGB) error {
	b := output.EncodeRGB24(pixels)

	type target struct {
		id string
		c  *Client
	}
	var slow []target
	h.mu.RLock()
	for id, clients := range h.clients {
		for c := range clients {
			select {
			case c.send <- b:
			default:
				slow = append(slow, target{id, c})
			}
		}
	}
	h.mu.RUnlock()
	for _, s := range slow {
		h.Unregister(s.id, s.c)
	}
	return nil
}
