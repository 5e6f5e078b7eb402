package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/auth/password"
	authservice "github.com/brightfund/brightfund/internal/auth/service"
	"github.com/brightfund/brightfund/internal/joinrequest/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/internal/validation"
	"github.com/brightfund/brightfund/pkg/db"
)

type service struct {
	log   *zap.Logger
	conn  *gorm.DB
	repo  domain.Repository
	users authdomain.Repository
	orgs  orgdomain.Service
	genID *snowflake.Node
}

func NewService(
	log *zap.Logger,
	conn *gorm.DB,
	repo domain.Repository,
	users authdomain.Repository,
	orgs orgdomain.Service,
	genID *snowflake.Node,
) domain.Service {
	return &service{
		log:   log.Named("joinrequest.service"),
		conn:  conn,
		repo:  repo,
		users: users,
		orgs:  orgs,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	if err := validation.Validate(validation.PathwayJoinRequest, validation.Fields{
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

	org, err := s.orgs.GetByID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}
	orgID, err := snowflake.ParseString(org.ID)
	if err != nil {
		return nil, orgdomain.ErrInvalidOrganization
	}

	email, err := authservice.NormalizeEmail(req.Email)
	if err != nil {
		return nil, &validation.RuleError{Field: "email", Code: "invalid_email", Message: "email address is not valid"}
	}

	// A pending or approved request for this pair already exists. The
	// partial unique index is the authority; this pre-check just turns the
	// common case into a friendly conflict without burning an insert.
	active, err := s.repo.HasActiveRequest(ctx, orgID, email)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.ErrRequestExists
	}

	// The password is hashed at submission so the plaintext never outlives
	// this call; approval later copies the hash as-is.
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	request := &domain.RegistrationRequest{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		Department:   strings.TrimSpace(req.Department),
		Role:         strings.TrimSpace(req.Role),
		PasswordHash: hash,
		Status:       domain.StatusPending,
		RequestedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, request); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrRequestExists
		}
		return nil, err
	}

	s.log.Info("registration request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("org_id", org.ID),
		zap.String("role", request.Role),
	)
	return &domain.CreateResponse{
		RequestID:        request.ID.String(),
		OrganizationName: org.Name,
		Status:           string(request.Status),
	}, nil
}

func (s *service) List(ctx context.Context, actor authdomain.Identity, orgID string, filter domain.ListFilter) (*domain.ListResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(orgID))
	if err != nil {
		return nil, orgdomain.ErrInvalidOrganization
	}
	if !actor.System && actor.OrgID != id {
		return nil, authdomain.ErrForbidden
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, &validation.RuleError{Field: "status", Code: "invalid_status", Message: "unknown status filter"}
	}

	requests, err := s.repo.List(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Statistics(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{Requests: requests, Statistics: stats}, nil
}

// Approve flips a pending request to approved and provisions the user in the
// same transaction. The conditional update serializes concurrent decisions:
// exactly one reviewer wins, everyone else gets a conflict.
func (s *service) Approve(ctx context.Context, actor authdomain.Identity, requestID string) (*domain.DecisionResponse, error) {
	request, err := s.findForReview(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.Approve(actor.UserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	user := &authdomain.User{
		ID:           s.genID.Generate(),
		OrgID:        request.OrgID,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		Phone:        request.Phone,
		JobTitle:     request.JobTitle,
		Department:   request.Department,
		Role:         request.Role,
		IsActive:     true,
		PasswordHash: request.PasswordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	err = s.conn.Transaction(func(tx *gorm.DB) error {
		won, err := s.repo.WithTx(tx).DecideIfPending(ctx, request)
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrAlreadyDecided
		}
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return authdomain.ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("registration request approved",
		zap.String("request_id", request.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("reviewed_by", actor.UserID.String()),
	)
	return &domain.DecisionResponse{
		RequestID: request.ID.String(),
		Status:    string(domain.StatusApproved),
		UserID:    user.ID.String(),
	}, nil
}

func (s *service) Reject(ctx context.Context, actor authdomain.Identity, requestID, reason string) (*domain.DecisionResponse, error) {
	request, err := s.findForReview(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.Reject(strings.TrimSpace(reason), actor.UserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	won, err := s.repo.DecideIfPending(ctx, request)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, domain.ErrAlreadyDecided
	}

	s.log.Info("registration request rejected",
		zap.String("request_id", request.ID.String()),
		zap.String("reviewed_by", actor.UserID.String()),
	)
	return &domain.DecisionResponse{
		RequestID: request.ID.String(),
		Status:    string(domain.StatusRejected),
	}, nil
}

// findForReview loads a request on behalf of a reviewing admin. A request in
// another organization reads as not found rather than forbidden, so reviewers
// cannot probe other tenants' queues.
func (s *service) findForReview(ctx context.Context, actor authdomain.Identity, requestID string) (*domain.RegistrationRequest, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(requestID))
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.System && request.OrgID != actor.OrgID {
		return nil, domain.ErrRequestNotFound
	}
	return request, nil
}
