package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain"
	"socialnet/internal/services"
	"socialnet/internal/testutil"
)

type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialPresence(t *testing.T, hub *services.PresenceHub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewPresenceHandler(hub, nil, nil).RegisterRoutes(router.Group("/api"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event wireEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	return event
}

func TestPresenceHandler_ConnectSendsUsersUpdate(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.MustSeedUser(&domain.User{UserID: 1, Username: "ada", Email: "ada@example.com", IsLogged: true})
	hub := services.NewPresenceHub(repo, nil)

	conn := dialPresence(t, hub)

	event := readEvent(t, conn)
	assert.Equal(t, "users-update", event.Event)

	var users []domain.ActiveUser
	require.NoError(t, json.Unmarshal(event.Data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ada", users[0].Username)
}

func TestPresenceHandler_IdentifyFlow(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := services.NewPresenceHub(repo, nil)

	conn := dialPresence(t, hub)
	readEvent(t, conn) // connect broadcast

	require.NoError(t, conn.WriteJSON(gin.H{
		"event": "identifyUser",
		"data":  gin.H{"id": "ignored", "username": "ada"},
	}))

	// Group broadcast first, then the direct identity list.
	first := readEvent(t, conn)
	assert.Equal(t, "users-update", first.Event)

	second := readEvent(t, conn)
	assert.Equal(t, "users-update", second.Event)

	var identities []domain.UserIdentity
	require.NoError(t, json.Unmarshal(second.Data, &identities))
	require.Len(t, identities, 1)
	assert.Equal(t, "ada", identities[0].Username)
}

func TestPresenceHandler_RequestUsersUpdate(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := services.NewPresenceHub(repo, nil)

	conn := dialPresence(t, hub)
	readEvent(t, conn) // connect broadcast

	require.NoError(t, conn.WriteJSON(gin.H{"event": "requestUsersUpdate"}))

	first := readEvent(t, conn)
	assert.Equal(t, "users-update", first.Event)

	second := readEvent(t, conn)
	assert.Equal(t, "server-status", second.Event)

	var status domain.ServerStatus
	require.NoError(t, json.Unmarshal(second.Data, &status))
	assert.True(t, status.Active)
	assert.Equal(t, 1, status.ConnectedUsers)
}

func TestPresenceHandler_DisconnectCleansRegistry(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := services.NewPresenceHub(repo, nil)

	conn := dialPresence(t, hub)
	readEvent(t, conn)
	require.Equal(t, 1, hub.ConnectedCount())

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.ConnectedCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
