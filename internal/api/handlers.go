package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"ambilight-agent/internal/model"
	"ambilight-agent/internal/storage"
	"ambilight-agent/internal/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	store     *storage.Store
	hub       *ws.Hub
	deviceHub *ws.DeviceHub
	state     func() string
	upgrader  websocket.Upgrader
}

type apiError struct {
	Error string `json:"error"`
}

type statusResponse struct {
	model.Status
	State   string   `json:"state"`
	Devices []string `json:"devices"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	resp := statusResponse{Status: h.store.Snapshot(), State: "idle", Devices: []string{}}
	if h.state != nil {
		resp.State = h.state()
	}
	if h.deviceHub != nil {
		resp.Devices = h.deviceHub.Devices()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) LatestFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	f := h.store.GetLatestFrame()
	if f == nil {
		writeErr(w, http.StatusNotFound, errors.New("no frame rendered yet"))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Str("uri", r.RequestURI).Msg("ws upgrade failed")
		return
	}
	client := ws.NewClient(h.hub, conn)
	h.hub.BroadcastEvent(model.Event{Type: "ws.client_connected", Payload: map[string]string{"id": uuid.NewString()}, CreatedAt: time.Now().UnixMilli()})
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
	if f := h.store.GetLatestFrame(); f != nil {
		h.hub.BroadcastEvent(model.Event{Type: "strip.frame.updated", Payload: f, CreatedAt: time.Now().UnixMilli()})
	}
}

func (h *Handler) DeviceWebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	deviceID := strings.TrimSpace(r.URL.Query().Get("device_id"))
	if deviceID == "" {
		writeErr(w, http.StatusBadRequest, errors.New("device_id required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Str("device_id", deviceID).Msg("device ws upgrade failed")
		return
	}
	client := h.deviceHub.Register(deviceID, conn)
	log.Info().Str("device_id", deviceID).Str("remote", r.RemoteAddr).Msg("strip device connected")
	go client.WritePump()
	go client.ReadPump()
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, apiError{Error: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}
