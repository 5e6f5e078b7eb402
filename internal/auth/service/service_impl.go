package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/auth/password"
	"github.com/brightfund/brightfund/internal/auth/token"
	"github.com/brightfund/brightfund/internal/config"
	"github.com/brightfund/brightfund/pkg/db"
)

type Service struct {
	log    *zap.Logger
	repo   domain.Repository
	genID  *snowflake.Node
	issuer *token.Issuer
	cfg    config.Config
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node, issuer *token.Issuer, cfg config.Config) domain.Service {
	return &Service{
		log:    log.Named("auth.service"),
		repo:   repo,
		genID:  genID,
		issuer: issuer,
		cfg:    cfg,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		OrgID:        snowflake.ID(req.OrgID),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		Department:   strings.TrimSpace(req.Department),
		Role:         req.Role,
		IsActive:     true,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index is authoritative; the pre-check only loses races.
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("org_id", user.OrgID.String()),
		zap.String("role", user.Role),
	)
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	identity := domain.Identity{
		UserID: user.ID,
		OrgID:  user.OrgID,
		Role:   user.Role,
	}
	signed, expiresAt, err := s.issuer.Issue(identity, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		UserID:      user.ID.String(),
		Role:        user.Role,
	}, nil
}

// SystemLogin verifies the fixed bootstrap credential and issues an
// escalated, non-tenant-scoped token.
func (s *Service) SystemLogin(ctx context.Context, username, pass string) (*domain.LoginResult, error) {
	_ = ctx

	if s.cfg.SuperadminPassword == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.SuperadminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.SuperadminPassword)) == 1
	if !userOK || !passOK {
		return nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{Role: "superadmin", System: true}
	signed, expiresAt, err := s.issuer.Issue(identity, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info("system credential login")
	return &domain.LoginResult{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		Role:        "superadmin",
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.Identity, error) {
	_ = ctx
	return s.issuer.Verify(rawToken)
}

// NormalizeEmail lowercases and validates an address for storage and lookup.
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}
