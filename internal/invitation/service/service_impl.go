package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	authservice "github.com/brightfund/brightfund/internal/auth/service"
	"github.com/brightfund/brightfund/internal/config"
	"github.com/brightfund/brightfund/internal/invitation/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/internal/providers/email"
	"github.com/brightfund/brightfund/internal/rolecatalog"
	"github.com/brightfund/brightfund/internal/validation"
)

type service struct {
	log    *zap.Logger
	repo   domain.Repository
	orgs   orgdomain.Service
	mailer email.Provider
	genID  *snowflake.Node
	cfg    config.Config
}

func NewService(
	log *zap.Logger,
	repo domain.Repository,
	orgs orgdomain.Service,
	mailer email.Provider,
	genID *snowflake.Node,
	cfg config.Config,
) domain.Service {
	return &service{
		log:    log.Named("invitation.service"),
		repo:   repo,
		orgs:   orgs,
		mailer: mailer,
		genID:  genID,
		cfg:    cfg,
	}
}

func (s *service) Invite(ctx context.Context, actor authdomain.Identity, req domain.InviteRequest) (*domain.InviteResponse, error) {
	if err := validation.Validate(validation.PathwayInvitation, validation.Fields{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Role:       req.Role,
	}); err != nil {
		return nil, err
	}

	normalized, err := authservice.NormalizeEmail(req.Email)
	if err != nil {
		return nil, &validation.RuleError{Field: "email", Code: "invalid_email", Message: "email address is not valid"}
	}

	now := time.Now().UTC()
	inv := &domain.Invitation{
		ID:         s.genID.Generate(),
		OrgID:      actor.OrgID,
		Email:      normalized,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      strings.TrimSpace(req.Phone),
		JobTitle:   strings.TrimSpace(req.JobTitle),
		Department: strings.TrimSpace(req.Department),
		Role:       strings.TrimSpace(req.Role),
		Code:       uuid.NewString(),
		Status:     domain.StatusPending,
		InvitedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	acceptURL := fmt.Sprintf("%s/invite/accept?code=%s", s.cfg.PublicBaseURL, inv.Code)

	emailSent := false
	if req.SendEmail {
		// Dispatch failures are logged, never surfaced: the invitation row
		// exists either way and the link can be re-sent out of band.
		if err := s.dispatch(ctx, inv, acceptURL); err != nil {
			s.log.Warn("invitation email dispatch failed",
				zap.String("invitation_id", inv.ID.String()),
				zap.Error(err),
			)
		} else {
			emailSent = true
			if err := s.repo.MarkEmailSent(ctx, inv); err != nil {
				s.log.Warn("failed to record email dispatch", zap.Error(err))
			}
		}
	}

	s.log.Info("invitation created",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("org_id", inv.OrgID.String()),
		zap.String("role", inv.Role),
		zap.Bool("email_sent", emailSent),
	)
	return &domain.InviteResponse{
		ID:        inv.ID.String(),
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    string(inv.Status),
		AcceptURL: acceptURL,
		EmailSent: emailSent,
	}, nil
}

func (s *service) dispatch(ctx context.Context, inv *domain.Invitation, acceptURL string) error {
	orgName := "your organization"
	if org, err := s.orgs.GetByID(ctx, inv.OrgID.String()); err == nil {
		orgName = org.Name
	}

	roleLabel := inv.Role
	if role, ok := rolecatalog.Lookup(inv.Role); ok {
		roleLabel = role.Label
	}

	return s.mailer.SendTemplate(ctx, []string{inv.Email}, "invite_staff", map[string]interface{}{
		"org_name":   orgName,
		"first_name": inv.FirstName,
		"role_label": roleLabel,
		"accept_url": acceptURL,
	})
}
