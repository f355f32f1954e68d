package domain

import (
	"context"
	"time"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(username, email, firstName, lastName, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
	}
}

// Identity is the verified caller attached to a request by the auth middleware.
type Identity struct {
	ID       int64
	Username string
}

// SignUpInput holds the sign-up form.
type SignUpInput struct {
	Username        string
	Password        string
	RetypedPassword string
	Email           string
	FirstName       string
	LastName        string
}

// PasswordHasher hashes and verifies passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(id Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// AuthService defines sign-up, login and profile lookup.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (user *User, token string, err error)
	Login(ctx context.Context, username, password string) (user *User, token string, err error)
	Profile(ctx context.Context, userID int64) (*User, error)
}
