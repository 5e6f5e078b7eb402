// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Organization represents a tenant. Organizations are created exactly once,
// during bootstrap; no other pathway creates one.
type Organization struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	Slug          string            `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	Email         string            `gorm:"type:text;not null" json:"email"`
	Phone         string            `gorm:"type:text" json:"phone"`
	Street        string            `gorm:"type:text" json:"street"`
	City          string            `gorm:"type:text" json:"city"`
	State         string            `gorm:"type:text" json:"state"`
	PostalCode    string            `gorm:"column:postal_code;type:text" json:"postal_code"`
	Country       string            `gorm:"type:text" json:"country"`
	EIN           string            `gorm:"column:ein;type:text" json:"ein"`
	Website       string            `gorm:"type:text" json:"website"`
	Mission       string            `gorm:"type:text" json:"mission"`
	FiscalYearEnd string            `gorm:"column:fiscal_year_end;type:text" json:"fiscal_year_end"`
	IsActive      bool              `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
