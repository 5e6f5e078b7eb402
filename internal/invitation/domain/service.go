package domain

import (
	"context"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
)

type InviteRequest struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	JobTitle   string
	Department string
	Role       string
	// SendEmail controls whether the acceptance link is dispatched through
	// the email provider. When false the caller distributes the link
	// out of band.
	SendEmail bool
}

type InviteResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AcceptURL string `json:"accept_url"`
	EmailSent bool   `json:"email_sent"`
}

type Service interface {
	Invite(ctx context.Context, actor authdomain.Identity, req InviteRequest) (*InviteResponse, error)
}
