// Package seed provisions the default organization used by unauthenticated
// staff self-registration in single-tenant deployments.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
)

const (
	defaultOrgName = "Main"
	defaultOrgSlug = "main"
)

// EnsureDefaultOrg makes sure the organization referenced by DEFAULT_ORG
// exists, creating a minimal active one when it does not.
func EnsureDefaultOrg(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org orgdomain.Organization
		err := tx.First(&org, "id = ?", id).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&orgdomain.Organization{
			ID:        snowflake.ID(id),
			Name:      defaultOrgName,
			Slug:      defaultOrgSlug,
			Email:     "admin@brightfund.org",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	})
}
