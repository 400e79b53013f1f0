package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Gender enumerates the optional gender field of an account.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents an account in the social network.
//
// IsLogged is the persisted logical login flag driving the presence view. It
// is flipped, not set, by UserService.ToggleLogged.
type User struct {
	UserID       int        `db:"user_id" json:"userId"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Username     string     `db:"username" json:"username"`
	Role         string     `db:"role" json:"role"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Alias        string     `db:"alias" json:"alias,omitempty"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender       Gender     `db:"gender" json:"gender,omitempty"`
	Avatar       string     `db:"avatar" json:"avatar,omitempty"`
	IsLogged     bool       `db:"is_logged" json:"isLogged"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// SetPassword hashes and stores the user's password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return NewInternalError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return NewAuthenticationError("INVALID_PASSWORD", "Password does not match")
	}
	return nil
}

// Validate validates the user data.
func (u *User) Validate() error {
	if u.Email == "" {
		return NewValidationError("INVALID_EMAIL", "Email is required", map[string]interface{}{"field": "email"})
	}
	if u.Username == "" {
		return NewValidationError("INVALID_USERNAME", "Username is required", map[string]interface{}{"field": "username"})
	}
	if u.FirstName == "" {
		return NewValidationError("INVALID_FIRST_NAME", "First name is required", map[string]interface{}{"field": "firstName"})
	}
	if u.LastName == "" {
		return NewValidationError("INVALID_LAST_NAME", "Last name is required", map[string]interface{}{"field": "lastName"})
	}
	return nil
}

// ActiveUser is the projection of an account broadcast over the presence
// channel as part of a users-update event.
type ActiveUser struct {
	UserID    int    `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsLogged  bool   `json:"isLogged"`
	Avatar    string `json:"avatar,omitempty"`
}

// ActiveProjection reduces the account to its presence payload shape.
func (u *User) ActiveProjection() ActiveUser {
	return ActiveUser{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsLogged:  u.IsLogged,
		Avatar:    u.Avatar,
	}
}

// CreateUserRequest carries the data needed to create a new account.
type CreateUserRequest struct {
	FirstName   string `json:"firstName" binding:"required,min=1,max=50"`
	LastName    string `json:"lastName" binding:"required,min=1,max=50"`
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Role        string `json:"role" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Alias       string `json:"alias,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      Gender `json:"gender,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// UpdateUserRequest carries the fields that can be updated on an account.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	Alias     *string `json:"alias,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// LoginRequest carries login credentials. Either email or username must be
// supplied; email wins when both are present.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"passwordHash" binding:"required"`
}

// UserPage is one page of accounts plus the unpaginated total.
type UserPage struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
}
