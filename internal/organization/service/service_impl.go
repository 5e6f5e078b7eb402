package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/pkg/db"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("organization.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.OrganizationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:            s.genID.Generate(),
		Name:          name,
		Slug:          slug.Make(name),
		Email:         strings.ToLower(email),
		Phone:         strings.TrimSpace(req.Phone),
		Street:        strings.TrimSpace(req.Street),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Country:       strings.TrimSpace(req.Country),
		EIN:           strings.TrimSpace(req.EIN),
		Website:       strings.TrimSpace(req.Website),
		Mission:       strings.TrimSpace(req.Mission),
		FiscalYearEnd: strings.TrimSpace(req.FiscalYearEnd),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrOrganizationExists
		}
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("org_id", org.ID.String()),
		zap.String("slug", org.Slug),
	)
	return response(org), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.OrganizationResponse, error) {
	raw := strings.TrimSpace(id)
	if raw == "" {
		return nil, domain.ErrInvalidOrganization
	}
	orgID, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, domain.ErrInvalidOrganization
	}

	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return response(org), nil
}

func (s *service) PublicList(ctx context.Context) ([]domain.PublicListItem, error) {
	orgs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PublicListItem, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, domain.PublicListItem{
			ID:   org.ID.String(),
			Name: org.Name,
		})
	}
	return items, nil
}

func response(org *domain.Organization) *domain.OrganizationResponse {
	return &domain.OrganizationResponse{
		ID:            org.ID.String(),
		Name:          org.Name,
		Slug:          org.Slug,
		Email:         org.Email,
		EIN:           org.EIN,
		Website:       org.Website,
		Mission:       org.Mission,
		FiscalYearEnd: org.FiscalYearEnd,
	}
}
