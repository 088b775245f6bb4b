package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/sports-portal/livescore"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *livescore.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" or an empty
// list allows any origin.
func NewWebSocketHandler(hub *livescore.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeWs подключает клиента к ленте счёта. Клиент подключается к
// /ws/matches или /ws/matches?sport=cricket.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := livescore.RoomForSport(r.URL.Query().Get("sport"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		h.logger.Warn("websocket upgrade failed", "room", room, "error", err)
		return
	}

	client := livescore.NewClient(h.hub, conn, room)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("live score client connected", "room", room)
}
