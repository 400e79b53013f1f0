package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain"
	"socialnet/internal/testutil"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-123"

func newTestAuthService(t *testing.T) (*AuthService, *testutil.MockUserRepository, *TokenInvalidationCache) {
	t.Helper()

	repo := testutil.NewMockUserRepository()
	cache := NewTokenInvalidationCache()
	t.Cleanup(cache.Close)

	userService := NewUserService(repo)
	return NewAuthService(repo, cache, userService, testJWTSecret, time.Hour), repo, cache
}

func seedAccount(t *testing.T, repo *testutil.MockUserRepository, password string) *domain.User {
	t.Helper()

	user := &domain.User{
		UserID:    1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Role:      "user",
	}
	require.NoError(t, user.SetPassword(password))
	repo.MustSeedUser(user)
	return user
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsLogged, "login flips the persisted flag")

	claims, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "ada", claims.Username)
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Username: "ada",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.AuthenticationError, domainErr.Type)
}

func TestAuthService_Login_MissingIdentifier(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "x"})
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ValidationError, domainErr.Type)
}

func TestAuthService_Login_ToggleSemanticsOnStaleFlag(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedAccount(t, repo, "super-secret")

	// The flag is flipped, not set. A second login while already marked
	// logged-in flips it back off.
	require.NoError(t, repo.SetLogged(context.Background(), user.UserID, true))

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.False(t, resp.User.IsLogged)
}

func TestAuthService_LogoutInvalidatesSession(t *testing.T) {
	svc, repo, cache := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	verified, err := svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, verified.Valid)
	assert.False(t, verified.Invalidated)

	loggedOut, err := svc.Logout(context.Background(), 1)
	require.NoError(t, err)
	// Logout toggles from a fixed logged-out snapshot, so the stored flag
	// ends up on even though the user just logged out.
	assert.True(t, loggedOut.IsLogged)
	assert.True(t, cache.IsInvalidated("1"))

	// The token still parses but the session is flagged.
	verified, err = svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.False(t, verified.Valid)
	assert.True(t, verified.Invalidated)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)

	claims, err := svc.ParseToken(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
}

func TestAuthService_RefreshToken_RejectsInvalidatedSession(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	_, err = svc.Logout(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.Token)
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.AuthenticationError, domainErr.Type)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.ParseToken("not-a-token")
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.AuthenticationError, domainErr.Type)
}

func TestAuthService_TokenSignedWithDifferentSecretRejected(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(t, repo, "super-secret")

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	otherCache := NewTokenInvalidationCache()
	t.Cleanup(otherCache.Close)
	other := NewAuthService(repo, otherCache, NewUserService(repo),
		"a-completely-different-secret-key-456", time.Hour)
	_, err = other.ParseToken(resp.Token)
	require.Error(t, err)
}
