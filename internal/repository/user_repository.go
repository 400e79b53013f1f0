package repository

import (
	"context"

	"socialnet/internal/domain"
)

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	// Create creates a new user and fills in the generated id.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by primary id.
	GetByID(ctx context.Context, id int) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List retrieves every account. The presence broadcaster consumes this
	// on each recompute.
	List(ctx context.Context) ([]*domain.User, error)

	// ListPaginated retrieves one page of accounts plus the total count.
	ListPaginated(ctx context.Context, page, pageSize int) (*domain.UserPage, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// SetLogged persists the login flag for the given user id.
	SetLogged(ctx context.Context, id int, isLogged bool) error

	// Delete deletes a user by primary id.
	Delete(ctx context.Context, id int) error
}
