package service

import (
	"context"

	"go.uber.org/zap"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/config"
	"github.com/brightfund/brightfund/internal/staff/domain"
	"github.com/brightfund/brightfund/internal/validation"
)

type service struct {
	log   *zap.Logger
	users authdomain.Service
	cfg   config.Config
}

func NewService(log *zap.Logger, users authdomain.Service, cfg config.Config) domain.Service {
	return &service{
		log:   log.Named("staff.service"),
		users: users,
		cfg:   cfg,
	}
}

func (s *service) Register(ctx context.Context, actor *authdomain.Identity, req domain.RegisterRequest) (*domain.StaffResponse, error) {
	// System credentials carry no organization, so a staff record created
	// under one would land in org 0. Superadmins provision admins through
	// the bootstrap endpoint instead.
	if actor != nil && actor.System {
		return nil, authdomain.ErrForbidden
	}

	pathway := validation.PathwaySelfStaff
	if actor != nil {
		pathway = validation.PathwayDirectStaff
	}

	if err := validation.Validate(pathway, validation.Fields{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	}); err != nil {
		return nil, err
	}

	// The target organization is never taken from the request body: admins
	// create staff in their own organization, self-registration lands in the
	// configured default one.
	var orgID int64
	switch {
	case actor != nil:
		orgID = int64(actor.OrgID)
	case s.cfg.DefaultOrgID != 0:
		orgID = s.cfg.DefaultOrgID
	default:
		return nil, domain.ErrNoDefaultOrganization
	}

	user, err := s.users.CreateUser(ctx, authdomain.CreateUserRequest{
		OrgID:      orgID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Role:       req.Role,
		Password:   req.Password,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("staff account created",
		zap.String("user_id", user.ID.String()),
		zap.String("org_id", user.OrgID.String()),
		zap.String("role", user.Role),
		zap.Bool("self_registered", actor == nil),
	)
	return &domain.StaffResponse{
		ID:         user.ID.String(),
		OrgID:      user.OrgID.String(),
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		JobTitle:   user.JobTitle,
		Department: user.Department,
		IsActive:   user.IsActive,
	}, nil
}
