package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusAccepted InvitationStatus = "accepted"
	StatusRevoked  InvitationStatus = "revoked"
)

// Invitation is an admin-issued pre-authorization for a future account. The
// code is the capability embedded in the acceptance link.
type Invitation struct {
	ID         snowflake.ID     `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID     `gorm:"column:org_id;not null;index" json:"organization_id"`
	Email      string           `gorm:"type:text;not null;index" json:"email"`
	FirstName  string           `gorm:"type:text;not null" json:"first_name"`
	LastName   string           `gorm:"type:text;not null" json:"last_name"`
	Phone      string           `gorm:"type:text" json:"phone"`
	JobTitle   string           `gorm:"type:text" json:"job_title"`
	Department string           `gorm:"type:text" json:"department"`
	Role       string           `gorm:"type:text;not null" json:"role"`
	Code       string           `gorm:"type:text;not null;uniqueIndex:ux_invitations_code" json:"-"`
	Status     InvitationStatus `gorm:"type:text;not null;default:pending" json:"status"`
	InvitedBy  snowflake.ID     `gorm:"column:invited_by" json:"invited_by"`
	EmailSent  bool             `gorm:"column:email_sent;not null;default:false" json:"email_sent"`
	CreatedAt  time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invitation) TableName() string { return "invitations" }
