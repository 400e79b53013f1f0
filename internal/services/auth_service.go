package services

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// TokenClaims are the JWT claims issued on login.
type TokenClaims struct {
	UserID    int    `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// LoginResponse carries the issued token and the post-toggle account state.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// VerifyTokenResponse reports the decoded claims and whether the user's
// session has been invalidated since issuance.
type VerifyTokenResponse struct {
	Valid       bool         `json:"valid"`
	Invalidated bool         `json:"invalidated"`
	Claims      *TokenClaims `json:"claims,omitempty"`
}

// AuthService handles authentication: credential checks, token issuance and
// verification, and session invalidation on logout.
type AuthService struct {
	users         repository.UserRepository
	cache         *TokenInvalidationCache
	userService   *UserService
	jwtSecret     []byte
	jwtExpiration time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	cache *TokenInvalidationCache,
	userService *UserService,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		cache:         cache,
		userService:   userService,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
	}
}

// Login verifies credentials, flips the persisted login flag and issues a
// signed token. Email is preferred over username when both are present.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*LoginResponse, error) {
	if req.Email == "" && req.Username == "" {
		return nil, domain.NewValidationError("MISSING_IDENTIFIER", "Either email or username is required", nil)
	}

	var (
		user *domain.User
		err  error
	)
	if req.Email != "" {
		user, err = s.users.GetByEmail(ctx, req.Email)
	} else {
		user, err = s.users.GetByUsername(ctx, req.Username)
	}
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid credentials")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid credentials")
	}

	toggled, err := s.userService.ToggleLogged(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(toggled)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: toggled}, nil
}

// Logout flips the persisted login flag and records an invalidation marker
// for the user. The invalidation result is deliberately ignored; logout is
// never blocked by the cache.
//
// The toggle receives a fixed snapshot with IsLogged=false rather than the
// stored record, so the flip direction does not depend on the current flag.
// Kept for compatibility with existing clients.
func (s *AuthService) Logout(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userService.ToggleLogged(ctx, &domain.User{UserID: userID, IsLogged: false})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(strconv.Itoa(userID), "logout")
	return user, nil
}

// VerifyToken decodes the token and checks the invalidation cache. A token
// that parses but belongs to an invalidated session reports Valid=false.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*VerifyTokenResponse, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	invalidated := s.cache.IsInvalidated(claims.Subject)
	return &VerifyTokenResponse{
		Valid:       !invalidated,
		Invalidated: invalidated,
		Claims:      claims,
	}, nil
}

// RefreshToken issues a fresh token for a still-valid session.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*LoginResponse, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if s.cache.IsInvalidated(claims.Subject) {
		return nil, domain.NewAuthenticationError("TOKEN_INVALIDATED", "Session has been invalidated")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user}, nil
}

// ParseToken validates the signature and standard claims of a token.
func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewAuthenticationError("INVALID_SIGNING_METHOD", "Unexpected token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Token is invalid or expired")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Token is invalid or expired")
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		Avatar:    user.Avatar,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			Issuer:    "socialnet",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", domain.NewInternalError("TOKEN_SIGNING_FAILED", "Failed to sign token", err)
	}
	return signed, nil
}
