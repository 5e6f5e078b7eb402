package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(ctx context.Context, id string) (*OrganizationResponse, error)
	PublicList(ctx context.Context) ([]PublicListItem, error)
}

type CreateOrganizationRequest struct {
	Name          string
	Email         string
	Phone         string
	Street        string
	City          string
	State         string
	PostalCode    string
	Country       string
	EIN           string
	Website       string
	Mission       string
	FiscalYearEnd string
}

type OrganizationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Email         string `json:"email"`
	EIN           string `json:"ein,omitempty"`
	Website       string `json:"website,omitempty"`
	Mission       string `json:"mission,omitempty"`
	FiscalYearEnd string `json:"fiscal_year_end,omitempty"`
}

// PublicListItem is the minimal read view exposed to the unauthenticated
// join-request picker.
type PublicListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrOrganizationExists   = errors.New("organization already exists")
	ErrOrganizationNotFound = errors.New("organization not found")
)
