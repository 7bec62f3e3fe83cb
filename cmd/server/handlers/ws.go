package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/logger"
)

// WSHandler upgrades connections and subscribes them to the broadcast hub.
type WSHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
	logger   logger.Logger
}

// NewWSHandler creates a WebSocket handler. The server is a local tool, so
// cross-origin upgrades from the bundled UI are allowed.
func NewWSHandler(hub *broadcast.Hub, log logger.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Handle upgrades the connection and keeps it subscribed until it closes.
func (h *WSHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(r.Context(), "websocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := broadcast.NewWSClient(conn)
	h.hub.Subscribe(client)
	h.logger.Info(r.Context(), "observer connected", map[string]interface{}{
		"remote": conn.RemoteAddr().String(),
	})

	// Inbound messages are ignored; the read loop only detects disconnects.
	go func() {
		defer func() {
			h.hub.Unsubscribe(client)
			client.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
