package domain

import (
	"context"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
)

type CreateRequest struct {
	OrgID           string
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

type CreateResponse struct {
	RequestID        string `json:"request_id"`
	OrganizationName string `json:"organization_name"`
	Status           string `json:"status"`
}

// ListFilter narrows the admin review queue. Search matches name, email,
// job title and department, case-insensitively.
type ListFilter struct {
	Status RequestStatus
	Search string
}

type Statistics struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type ListResponse struct {
	Requests   []RegistrationRequest `json:"requests"`
	Statistics Statistics            `json:"statistics"`
}

type DecisionResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	UserID    string `json:"user_id,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	List(ctx context.Context, actor authdomain.Identity, orgID string, filter ListFilter) (*ListResponse, error)
	Approve(ctx context.Context, actor authdomain.Identity, requestID string) (*DecisionResponse, error)
	Reject(ctx context.Context, actor authdomain.Identity, requestID, reason string) (*DecisionResponse, error)
}
