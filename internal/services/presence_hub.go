package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// Outbound presence event names.
const (
	EventUsersUpdate  = "users-update"
	EventServerStatus = "server-status"
)

// clientSendBuffer sizes the per-client outbound queue. A client that stops
// draining its queue loses messages instead of stalling the hub.
const clientSendBuffer = 256

// presenceEvent is the wire envelope for every message pushed to a client.
type presenceEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// PresenceClient is one registered websocket connection. The hub owns the
// Identity value exclusively; the transport layer only reads from Send.
type PresenceClient struct {
	ID       string
	Identity domain.UserIdentity
	Send     chan []byte
}

// NewPresenceClient creates a client in the anonymous state.
func NewPresenceClient(connID string) *PresenceClient {
	return &PresenceClient{
		ID:       connID,
		Identity: domain.UserIdentity{ID: connID},
		Send:     make(chan []byte, clientSendBuffer),
	}
}

// PresenceHub tracks live websocket connections and publishes the active
// users view whenever the set changes.
//
// Every connect, disconnect and identify triggers exactly one recompute and
// one broadcast. Broadcasts are intentionally not coalesced; a burst of
// connects produces one broadcast per connect.
type PresenceHub struct {
	mu      sync.RWMutex
	clients map[string]*PresenceClient
	users   repository.UserRepository
	logger  *slog.Logger
}

// NewPresenceHub creates a presence hub backed by the given account store.
func NewPresenceHub(users repository.UserRepository, logger *slog.Logger) *PresenceHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresenceHub{
		clients: make(map[string]*PresenceClient),
		users:   users,
		logger:  logger,
	}
}

// Register adds a connection to the hub and broadcasts the refreshed active
// users view to everyone, the new client included.
func (h *PresenceHub) Register(ctx context.Context, client *PresenceClient) error {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.logger.Info("presence client connected", "connectionId", client.ID)
	return h.broadcastActiveUsers(ctx)
}

// Unregister removes a connection and broadcasts the refreshed view. Unknown
// connection ids are a silent no-op; nothing is broadcast for them.
func (h *PresenceHub) Unregister(ctx context.Context, connID string) error {
	h.mu.Lock()
	_, known := h.clients[connID]
	if known {
		delete(h.clients, connID)
	}
	h.mu.Unlock()

	if !known {
		return nil
	}

	h.logger.Info("presence client disconnected", "connectionId", connID)
	return h.broadcastActiveUsers(ctx)
}

// Identify overwrites the connection's identity, broadcasts the refreshed
// active users view to everyone, and additionally sends the raw in-memory
// identity list straight back to the identifying connection.
func (h *PresenceHub) Identify(ctx context.Context, connID string, identity domain.UserIdentity) error {
	h.mu.Lock()
	client, known := h.clients[connID]
	if known {
		client.Identity = identity
	}
	h.mu.Unlock()

	if !known {
		return domain.NewNotFoundError("CONNECTION_NOT_FOUND", "Unknown presence connection")
	}

	h.logger.Info("presence client identified", "connectionId", connID, "username", identity.Username)

	if err := h.broadcastActiveUsers(ctx); err != nil {
		return err
	}
	return h.sendIdentityList(client)
}

// RequestRefresh re-broadcasts the active users view on demand and follows
// it with a server-status message to everyone.
func (h *PresenceHub) RequestRefresh(ctx context.Context) error {
	if err := h.broadcastActiveUsers(ctx); err != nil {
		return err
	}

	status := domain.ServerStatus{Active: true, ConnectedUsers: h.ConnectedCount()}
	return h.broadcast(presenceEvent{Event: EventServerStatus, Data: status})
}

// ConnectedCount returns the number of registered connections.
func (h *PresenceHub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Identities returns a snapshot of the in-memory connection identity list.
func (h *PresenceHub) Identities() []domain.UserIdentity {
	h.mu.RLock()
	defer h.mu.RUnlock()

	identities := make([]domain.UserIdentity, 0, len(h.clients))
	for _, client := range h.clients {
		identities = append(identities, client.Identity)
	}
	return identities
}

// broadcastActiveUsers reads the persisted account list, filters it to
// logged-in accounts and pushes the projection to every connection.
func (h *PresenceHub) broadcastActiveUsers(ctx context.Context) error {
	users, err := h.users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts for presence broadcast: %w", err)
	}

	active := make([]domain.ActiveUser, 0, len(users))
	for _, u := range users {
		if u.IsLogged {
			active = append(active, u.ActiveProjection())
		}
	}

	return h.broadcast(presenceEvent{Event: EventUsersUpdate, Data: active})
}

// sendIdentityList unicasts the raw identity list to a single client.
func (h *PresenceHub) sendIdentityList(client *PresenceClient) error {
	payload, err := json.Marshal(presenceEvent{Event: EventUsersUpdate, Data: h.Identities()})
	if err != nil {
		return fmt.Errorf("failed to encode identity list: %w", err)
	}
	h.deliver(client, payload)
	return nil
}

func (h *PresenceHub) broadcast(event presenceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		h.deliver(client, payload)
	}
	return nil
}

// deliver enqueues without blocking. A full queue means the client stopped
// reading; the message is dropped and the write pump will notice on ping.
func (h *PresenceHub) deliver(client *PresenceClient, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		h.logger.Warn("presence client send buffer full, dropping message", "connectionId", client.ID)
	}
}
