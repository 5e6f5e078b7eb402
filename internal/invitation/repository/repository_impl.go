package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightfund/brightfund/internal/invitation/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, inv *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) MarkEmailSent(ctx context.Context, inv *domain.Invitation) error {
	return r.db.WithContext(ctx).
		Model(inv).
		Update("email_sent", true).Error
}
