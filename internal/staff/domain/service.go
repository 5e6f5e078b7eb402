// Package domain defines staff provisioning: one registration operation with
// two trust levels. An administrator creates staff in their own organization
// from the full assignable role set; an unauthenticated caller self-registers
// into the deployment's default organization from a restricted set.
package domain

import (
	"context"
	"errors"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
)

type Service interface {
	// Register provisions an active staff account. actor is nil for the
	// unauthenticated self-registration variant.
	Register(ctx context.Context, actor *authdomain.Identity, req RegisterRequest) (*StaffResponse, error)
}

type RegisterRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	JobTitle        string
	Department      string
	Role            string
	Password        string
	ConfirmPassword string
}

type StaffResponse struct {
	ID         string `json:"id"`
	OrgID      string `json:"organization_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	JobTitle   string `json:"job_title"`
	Department string `json:"department"`
	IsActive   bool   `json:"is_active"`
}

// ErrNoDefaultOrganization means the deployment has no default organization
// configured for unauthenticated self-registration.
var ErrNoDefaultOrganization = errors.New("self-registration is not available")
