// Package domain defines the organization bootstrap contract: a new tenant
// comes to life as an organization plus its first administrator, both
// created under the system credential.
package domain

import (
	"context"

	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
)

type Service interface {
	CreateOrganization(ctx context.Context, req orgdomain.CreateOrganizationRequest) (*orgdomain.OrganizationResponse, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*AdminResponse, error)
}

// CreateAdminRequest provisions the first administrator of a freshly created
// organization. The role is fixed server-side and never submitted.
type CreateAdminRequest struct {
	OrgID           string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	JobTitle        string
	Department      string
	Password        string
	ConfirmPassword string
}

type AdminResponse struct {
	ID        string `json:"id"`
	OrgID     string `json:"organization_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}
