package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/bootstrap/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/internal/rolecatalog"
	"github.com/brightfund/brightfund/internal/validation"
)

type service struct {
	log   *zap.Logger
	orgs  orgdomain.Service
	users authdomain.Service
}

func NewService(log *zap.Logger, orgs orgdomain.Service, users authdomain.Service) domain.Service {
	return &service{
		log:   log.Named("bootstrap.service"),
		orgs:  orgs,
		users: users,
	}
}

func (s *service) CreateOrganization(ctx context.Context, req orgdomain.CreateOrganizationRequest) (*orgdomain.OrganizationResponse, error) {
	return s.orgs.Create(ctx, req)
}

// CreateAdmin provisions the first administrator of an organization. The two
// bootstrap steps are independent transactions: if this step fails the
// organization from the previous step stays in place, and the caller may
// retry with the same organization id.
func (s *service) CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*domain.AdminResponse, error) {
	if err := validation.Validate(validation.PathwayBootstrapAdmin, validation.Fields{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	orgID, err := snowflake.ParseString(org.ID)
	if err != nil {
		return nil, orgdomain.ErrInvalidOrganization
	}

	user, err := s.users.CreateUser(ctx, authdomain.CreateUserRequest{
		OrgID:      int64(orgID),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Role:       rolecatalog.RoleAdmin,
		Password:   req.Password,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("organization administrator created",
		zap.String("org_id", org.ID),
		zap.String("user_id", user.ID.String()),
	)
	return &domain.AdminResponse{
		ID:        user.ID.String(),
		OrgID:     org.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}
