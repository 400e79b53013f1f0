package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain"
	"socialnet/internal/testutil"
)

func drainEvents(t *testing.T, client *PresenceClient) []presenceEvent {
	t.Helper()

	var events []presenceEvent
	for {
		select {
		case payload := <-client.Send:
			var event presenceEvent
			require.NoError(t, json.Unmarshal(payload, &event))
			events = append(events, event)
		default:
			return events
		}
	}
}

func activeUsersFrom(t *testing.T, event presenceEvent) []domain.ActiveUser {
	t.Helper()

	raw, err := json.Marshal(event.Data)
	require.NoError(t, err)
	var users []domain.ActiveUser
	require.NoError(t, json.Unmarshal(raw, &users))
	return users
}

func TestPresenceHub_RegisterBroadcastsFilteredView(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.MustSeedUser(&domain.User{UserID: 1, Username: "alice", Email: "alice@example.com", IsLogged: true})
	repo.MustSeedUser(&domain.User{UserID: 2, Username: "bob", Email: "bob@example.com", IsLogged: false})
	hub := NewPresenceHub(repo, nil)

	client := NewPresenceClient("c1")
	require.NoError(t, hub.Register(context.Background(), client))

	assert.Equal(t, 1, hub.ConnectedCount())

	events := drainEvents(t, client)
	require.Len(t, events, 1, "connect must fire exactly one broadcast")
	assert.Equal(t, EventUsersUpdate, events[0].Event)

	users := activeUsersFrom(t, events[0])
	require.Len(t, users, 1, "only logged-in accounts appear in the presence view")
	assert.Equal(t, "alice", users[0].Username)
}

func TestPresenceHub_ConnectIdentifyDisconnectMessageCounts(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := NewPresenceHub(repo, nil)
	ctx := context.Background()

	client := NewPresenceClient("c1")
	require.NoError(t, hub.Register(ctx, client))
	assert.Equal(t, 1, hub.ConnectedCount())
	require.Len(t, drainEvents(t, client), 1)

	identities := hub.Identities()
	require.Len(t, identities, 1)
	assert.True(t, identities[0].Anonymous())
	assert.Equal(t, "c1", identities[0].ID)

	// Identify: one group broadcast plus one direct message to the
	// identifying connection.
	require.NoError(t, hub.Identify(ctx, "c1", domain.UserIdentity{ID: "c1", Username: "alice"}))
	events := drainEvents(t, client)
	require.Len(t, events, 2)
	assert.Equal(t, EventUsersUpdate, events[0].Event)
	assert.Equal(t, EventUsersUpdate, events[1].Event)

	identities = hub.Identities()
	require.Len(t, identities, 1)
	assert.Equal(t, domain.UserIdentity{ID: "c1", Username: "alice"}, identities[0])

	require.NoError(t, hub.Unregister(ctx, "c1"))
	assert.Equal(t, 0, hub.ConnectedCount())
}

func TestPresenceHub_IdentifyOverwritesEntry(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := NewPresenceHub(repo, nil)
	ctx := context.Background()

	client := NewPresenceClient("c1")
	require.NoError(t, hub.Register(ctx, client))

	require.NoError(t, hub.Identify(ctx, "c1", domain.UserIdentity{ID: "c1", Username: "alice"}))
	require.NoError(t, hub.Identify(ctx, "c1", domain.UserIdentity{ID: "c1", Username: "alice2"}))

	identities := hub.Identities()
	require.Len(t, identities, 1, "re-identification replaces the entry")
	assert.Equal(t, "alice2", identities[0].Username)
}

func TestPresenceHub_UnregisterUnknownIsNoOp(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := NewPresenceHub(repo, nil)

	client := NewPresenceClient("c1")
	require.NoError(t, hub.Register(context.Background(), client))
	drainEvents(t, client)
	listCallsBefore := repo.ListCalls

	require.NoError(t, hub.Unregister(context.Background(), "ghost"))

	assert.Equal(t, 1, hub.ConnectedCount())
	assert.Empty(t, drainEvents(t, client), "unknown disconnect must not broadcast")
	assert.Equal(t, listCallsBefore, repo.ListCalls)
}

func TestPresenceHub_IdentifyUnknownConnection(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := NewPresenceHub(repo, nil)

	err := hub.Identify(context.Background(), "ghost", domain.UserIdentity{ID: "ghost", Username: "alice"})
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.NotFoundError, domainErr.Type)
}

func TestPresenceHub_StoreFailurePropagates(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.ListErr = errors.New("store down")
	hub := NewPresenceHub(repo, nil)

	client := NewPresenceClient("c1")
	err := hub.Register(context.Background(), client)
	require.Error(t, err, "a failing store loses the broadcast and surfaces the error")

	// The connection itself is still registered; only the broadcast failed.
	assert.Equal(t, 1, hub.ConnectedCount())
	assert.Empty(t, drainEvents(t, client))
}

func TestPresenceHub_RequestRefreshEmitsServerStatus(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	hub := NewPresenceHub(repo, nil)
	ctx := context.Background()

	a := NewPresenceClient("c1")
	b := NewPresenceClient("c2")
	require.NoError(t, hub.Register(ctx, a))
	require.NoError(t, hub.Register(ctx, b))
	drainEvents(t, a)
	drainEvents(t, b)

	require.NoError(t, hub.RequestRefresh(ctx))

	events := drainEvents(t, a)
	require.Len(t, events, 2)
	assert.Equal(t, EventUsersUpdate, events[0].Event)
	assert.Equal(t, EventServerStatus, events[1].Event)

	raw, err := json.Marshal(events[1].Data)
	require.NoError(t, err)
	var status domain.ServerStatus
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.True(t, status.Active)
	assert.Equal(t, 2, status.ConnectedUsers)

	// Both clients receive the refresh.
	assert.Len(t, drainEvents(t, b), 2)
}
