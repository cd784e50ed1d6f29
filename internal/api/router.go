package api

import (
	"net/http"

	"ambilight-agent/internal/storage"
	"ambilight-agent/internal/ws"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter serves the status and preview surface. state reports the
// controller state ("idle" or "updating").
func NewRouter(store *storage.Store, hub *ws.Hub, deviceHub *ws.DeviceHub, state func() string) http.Handler {
	h := &Handler{
		store:     store,
		hub:       hub,
		deviceHub: deviceHub,
		state:     state,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/status", h.Status)
	mux.HandleFunc("/v1/strip/latest", h.LatestFrame)
	mux.HandleFunc("/v1/ws", h.WebSocket)
	mux.HandleFunc("/v1/device/ws", h.DeviceWebSocket)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
