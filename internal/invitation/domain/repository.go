package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, inv *Invitation) error
	MarkEmailSent(ctx context.Context, inv *Invitation) error
}
