// Package testutil provides testing utilities and mock implementations.
package testutil

import (
	"context"
	"sort"
	"sync"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// MockUserRepository implements repository.UserRepository in memory.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int]*domain.User
	nextID int

	// ListErr, when set, is returned by List. Lets tests simulate a failing
	// persistence collaborator.
	ListErr error
	// SetLoggedErr, when set, is returned by SetLogged.
	SetLoggedErr error

	// ListCalls counts List invocations.
	ListCalls int
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates an empty mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int]*domain.User),
		nextID: 1,
	}
}

// Create stores a new user and assigns an id.
func (m *MockUserRepository) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domain.NewConflictError("EMAIL_EXISTS", "Email already exists")
		}
		if existing.Username == user.Username {
			return domain.NewConflictError("USERNAME_EXISTS", "Username already exists")
		}
	}

	user.UserID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.UserID] = &copied
	return nil
}

// GetByID retrieves a user by id.
func (m *MockUserRepository) GetByID(_ context.Context, id int) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	copied := *user
	return &copied, nil
}

// GetByEmail retrieves a user by email.
func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
}

// GetByUsername retrieves a user by username.
func (m *MockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
}

// List retrieves every user ordered by id.
func (m *MockUserRepository) List(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

// ListPaginated retrieves one page of users.
func (m *MockUserRepository) ListPaginated(ctx context.Context, page, pageSize int) (*domain.UserPage, error) {
	users, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	total := len(users)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &domain.UserPage{Users: users[start:end], Total: total}, nil
}

// Update replaces a stored user.
func (m *MockUserRepository) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.UserID]; !exists {
		return domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	copied := *user
	m.users[user.UserID] = &copied
	return nil
}

// SetLogged persists the login flag.
func (m *MockUserRepository) SetLogged(_ context.Context, id int, isLogged bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetLoggedErr != nil {
		return m.SetLoggedErr
	}

	user, exists := m.users[id]
	if !exists {
		return domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	user.IsLogged = isLogged
	return nil
}

// Delete removes a user.
func (m *MockUserRepository) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	delete(m.users, id)
	return nil
}

// MustSeedUser inserts a user directly, bypassing uniqueness checks.
func (m *MockUserRepository) MustSeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.UserID == 0 {
		user.UserID = m.nextID
	}
	if user.UserID >= m.nextID {
		m.nextID = user.UserID + 1
	}
	copied := *user
	m.users[user.UserID] = &copied
}
