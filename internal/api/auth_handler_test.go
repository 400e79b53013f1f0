package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain"
	"socialnet/internal/services"
	"socialnet/internal/testutil"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-123"

func newAuthTestRouter(t *testing.T) (*gin.Engine, *testutil.MockUserRepository, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := testutil.NewMockUserRepository()
	cache := services.NewTokenInvalidationCache()
	t.Cleanup(cache.Close)

	userService := services.NewUserService(repo)
	authService := services.NewAuthService(repo, cache, userService, testJWTSecret, time.Hour)

	router := gin.New()
	NewAuthHandler(authService).RegisterRoutes(router.Group("/api"))
	return router, repo, authService
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedHandlerAccount(t *testing.T, repo *testutil.MockUserRepository) {
	t.Helper()

	user := &domain.User{
		UserID:    1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Role:      "user",
	}
	require.NoError(t, user.SetPassword("super-secret"))
	repo.MustSeedUser(user)
}

func TestAuthHandler_Login(t *testing.T) {
	router, repo, _ := newAuthTestRouter(t)
	seedHandlerAccount(t, repo)

	rec := postJSON(t, router, "/api/auths/login", gin.H{
		"email":        "ada@example.com",
		"passwordHash": "super-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string      `json:"token"`
			User  domain.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Token)
	assert.True(t, body.Data.User.IsLogged)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	router, repo, _ := newAuthTestRouter(t)
	seedHandlerAccount(t, repo)

	rec := postJSON(t, router, "/api/auths/login", gin.H{
		"email":        "ada@example.com",
		"passwordHash": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_EchoesLoggedOutState(t *testing.T) {
	router, repo, _ := newAuthTestRouter(t)
	seedHandlerAccount(t, repo)

	// The account starts with isLogged=false, so the toggle actually turns
	// it on. The response still reports false; it echoes a fixed snapshot,
	// not the toggled state.
	rec := postJSON(t, router, "/api/auths/logout", gin.H{"userId": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			UserID   string `json:"userId"`
			IsLogged bool   `json:"isLogged"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1", body.Data.UserID)
	assert.False(t, body.Data.IsLogged)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stored.IsLogged, "persisted flag was flipped on, response said off")
}

func TestAuthHandler_Logout_UnknownUser(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auths/logout", gin.H{"userId": 99})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	router, repo, authService := newAuthTestRouter(t)
	seedHandlerAccount(t, repo)

	resp, err := authService.Login(context.Background(), &domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/auths/verify-token", gin.H{"token": resp.Token})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data services.VerifyTokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Valid)

	// After logout the same token reports invalidated.
	_, err = authService.Logout(context.Background(), 1)
	require.NoError(t, err)

	rec = postJSON(t, router, "/api/auths/verify-token", gin.H{"token": resp.Token})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Valid)
	assert.True(t, body.Data.Invalidated)
}

func TestAuthHandler_VerifyToken_Malformed(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	rec := postJSON(t, router, "/api/auths/verify-token", gin.H{"token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
