package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"socialnet/internal/domain"
)

// sqliteUserRepository implements UserRepository on top of dbx/SQLite.
type sqliteUserRepository struct {
	db *dbx.DB
}

// NewSQLiteUserRepository creates a new SQLite-backed user repository.
func NewSQLiteUserRepository(db *dbx.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	res, err := r.db.Insert("users", dbx.Params{
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"username":      user.Username,
		"role":          user.Role,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"alias":         user.Alias,
		"date_of_birth": user.DateOfBirth,
		"gender":        string(user.Gender),
		"avatar":        user.Avatar,
		"is_logged":     user.IsLogged,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated user id: %w", err)
	}
	user.UserID = int(id)
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return r.getOne(ctx, dbx.HashExp{"user_id": id})
}

func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, dbx.HashExp{"email": email})
}

func (r *sqliteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, dbx.HashExp{"username": username})
}

func (r *sqliteUserRepository) getOne(ctx context.Context, cond dbx.HashExp) (*domain.User, error) {
	var user domain.User
	err := r.db.Select().From("users").Where(cond).WithContext(ctx).One(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (r *sqliteUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.Select().From("users").OrderBy("user_id ASC").WithContext(ctx).All(&users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *sqliteUserRepository) ListPaginated(ctx context.Context, page, pageSize int) (*domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int
	if err := r.db.Select("COUNT(*)").From("users").WithContext(ctx).Row(&total); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []*domain.User
	err := r.db.Select().From("users").
		OrderBy("user_id ASC").
		Offset(int64((page - 1) * pageSize)).
		Limit(int64(pageSize)).
		WithContext(ctx).
		All(&users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users page %d: %w", page, err)
	}

	return &domain.UserPage{Users: users, Total: total}, nil
}

func (r *sqliteUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.Update("users", dbx.Params{
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"username":      user.Username,
		"role":          user.Role,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"alias":         user.Alias,
		"date_of_birth": user.DateOfBirth,
		"gender":        string(user.Gender),
		"avatar":        user.Avatar,
		"is_logged":     user.IsLogged,
		"updated_at":    user.UpdatedAt,
	}, dbx.HashExp{"user_id": user.UserID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.UserID, err)
	}
	return nil
}

func (r *sqliteUserRepository) SetLogged(ctx context.Context, id int, isLogged bool) error {
	_, err := r.db.Update("users", dbx.Params{
		"is_logged":  isLogged,
		"updated_at": time.Now().UTC(),
	}, dbx.HashExp{"user_id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to set login flag for user %d: %w", id, err)
	}
	return nil
}

func (r *sqliteUserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Delete("users", dbx.HashExp{"user_id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
