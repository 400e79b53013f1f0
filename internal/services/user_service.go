package services

import (
	"context"
	"time"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// UserService handles account business logic.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser registers a new account after checking uniqueness of email and
// username.
func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.NewConflictError("EMAIL_EXISTS", "A user with this email already exists")
	}
	if existing, err := s.users.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, domain.NewConflictError("USERNAME_EXISTS", "A user with this username already exists")
	}

	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Role:      req.Role,
		Email:     req.Email,
		Alias:     req.Alias,
		Gender:    req.Gender,
		Avatar:    req.Avatar,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, domain.NewValidationError("INVALID_DATE_OF_BIRTH", "Date of birth must be YYYY-MM-DD",
				map[string]interface{}{"field": "dateOfBirth"})
		}
		user.DateOfBirth = &dob
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves an account by id.
func (s *UserService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers retrieves one page of accounts.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) (*domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.users.ListPaginated(ctx, page, pageSize)
}

// UpdateUser applies a partial update to an account.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Alias != nil {
		user.Alias = *req.Alias
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// ToggleLogged persists the negation of the snapshot's login flag and
// returns the re-read record. The flag is flipped from the caller-supplied
// snapshot, not set to a target value, so a stale snapshot flips the wrong
// way rather than converging. Callers must pass the current stored state.
func (s *UserService) ToggleLogged(ctx context.Context, snapshot *domain.User) (*domain.User, error) {
	if err := s.users.SetLogged(ctx, snapshot.UserID, !snapshot.IsLogged); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, snapshot.UserID)
}
