// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// User represents a staff or administrator account. Email is unique across
// the whole system, not per organization.
type User struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID      `gorm:"column:org_id;not null;index" json:"organization_id"`
	FirstName    string            `gorm:"type:text;not null" json:"first_name"`
	LastName     string            `gorm:"type:text;not null" json:"last_name"`
	Email        string            `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone        string            `gorm:"type:text" json:"phone"`
	JobTitle     string            `gorm:"type:text" json:"job_title"`
	Department   string            `gorm:"type:text" json:"department"`
	Role         string            `gorm:"type:text;not null" json:"role"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true" json:"is_active"`
	PasswordHash string            `gorm:"type:text;not null" json:"-"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// FullName joins the name parts for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Identity is the authenticated caller extracted from a bearer token. It is
// passed explicitly into handlers and services; there is no ambient global
// auth state.
type Identity struct {
	UserID snowflake.ID
	OrgID  snowflake.ID
	Role   string
	System bool
}

// IsAdmin reports whether the identity carries an administrator role claim.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin" || i.Role == "superadmin"
}
