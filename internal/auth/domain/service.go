package domain

import (
	"context"
	"time"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Authenticate(ctx context.Context, rawToken string) (Identity, error)
	SystemLogin(ctx context.Context, username, password string) (*LoginResult, error)
}

// CreateUserRequest carries the fields for user provisioning. The password
// is plaintext exactly once, here; only its hash is ever stored.
type CreateUserRequest struct {
	OrgID      int64
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	JobTitle   string
	Department string
	Role       string
	Password   string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id,omitempty"`
	Role        string    `json:"role,omitempty"`
}
