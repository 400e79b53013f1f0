package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// Inbound presence event names.
const (
	eventIdentifyUser       = "identifyUser"
	eventRequestUsersUpdate = "requestUsersUpdate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// inboundPresenceMessage is one message read from a websocket client.
type inboundPresenceMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PresenceHandler upgrades websocket connections and bridges them to the
// presence hub.
type PresenceHandler struct {
	upgrader websocket.Upgrader
	hub      *services.PresenceHub
	logger   *slog.Logger
}

// NewPresenceHandler creates a new presence websocket handler. Upgrade
// requests are accepted only from the configured origins; requests without
// an Origin header (non-browser clients) are allowed.
func NewPresenceHandler(hub *services.PresenceHub, allowedOrigins []string, logger *slog.Logger) *PresenceHandler {
	if logger == nil {
		logger = slog.Default()
	}

	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &PresenceHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if origins[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && origins[u.Scheme+"://"+u.Host]
			},
		},
		hub:    hub,
		logger: logger,
	}
}

// RegisterRoutes registers the websocket upgrade route.
func (h *PresenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.Connect)
}

// Connect upgrades the request and runs the connection until it closes.
// GET /api/ws
func (h *PresenceHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remoteAddr", c.ClientIP())
		return
	}

	client := services.NewPresenceClient(uuid.New().String())
	if err := h.hub.Register(c.Request.Context(), client); err != nil {
		h.logger.Error("presence register broadcast failed", "connectionId", client.ID, "error", err)
	}

	go h.writePump(conn, client)
	h.readPump(conn, client)
}

// readPump consumes client messages until the connection drops, then
// unregisters. Runs on the upgrade request's goroutine.
func (h *PresenceHandler) readPump(conn *websocket.Conn, client *services.PresenceClient) {
	defer func() {
		if err := h.hub.Unregister(context.Background(), client.ID); err != nil {
			h.logger.Error("presence unregister broadcast failed", "connectionId", client.ID, "error", err)
		}
		_ = conn.Close()
	}()

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "connectionId", client.ID, "error", err)
			}
			return
		}
		h.dispatch(client, raw)
	}
}

func (h *PresenceHandler) dispatch(client *services.PresenceClient, raw []byte) {
	var msg inboundPresenceMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("discarding malformed presence message", "connectionId", client.ID, "error", err)
		return
	}

	ctx := context.Background()
	switch msg.Event {
	case eventIdentifyUser:
		var identity domain.UserIdentity
		if err := json.Unmarshal(msg.Data, &identity); err != nil {
			h.logger.Warn("discarding malformed identify payload", "connectionId", client.ID, "error", err)
			return
		}
		if err := h.hub.Identify(ctx, client.ID, identity); err != nil {
			h.logger.Error("identify failed", "connectionId", client.ID, "error", err)
		}
	case eventRequestUsersUpdate:
		if err := h.hub.RequestRefresh(ctx); err != nil {
			h.logger.Error("presence refresh failed", "connectionId", client.ID, "error", err)
		}
	default:
		h.logger.Warn("unknown presence event", "connectionId", client.ID, "event", msg.Event)
	}
}

// writePump drains the client's send queue onto the wire and keeps the
// connection alive with pings.
func (h *PresenceHandler) writePump(conn *websocket.Conn, client *services.PresenceClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
