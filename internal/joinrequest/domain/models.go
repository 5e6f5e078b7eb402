// Package domain holds the registration request aggregate. A request is a
// prospective staff account waiting on an administrator's decision; the
// status field is a small state machine whose only transitions are
// pending to approved and pending to rejected, both terminal.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type RegistrationRequest struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID           snowflake.ID  `gorm:"column:org_id;not null;index" json:"organization_id"`
	FirstName       string        `gorm:"type:text;not null" json:"first_name"`
	LastName        string        `gorm:"type:text;not null" json:"last_name"`
	Email           string        `gorm:"type:text;not null" json:"email"`
	Phone           string        `gorm:"type:text" json:"phone"`
	JobTitle        string        `gorm:"type:text" json:"job_title"`
	Department      string        `gorm:"type:text" json:"department"`
	Role            string        `gorm:"type:text;not null" json:"requested_role"`
	PasswordHash    string        `gorm:"type:text;not null" json:"-"`
	Status          RequestStatus `gorm:"type:text;not null;default:pending;index" json:"status"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	RequestedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"requested_at"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`
	ReviewedBy      snowflake.ID  `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
}

func (RegistrationRequest) TableName() string { return "registration_requests" }

// Approve moves a pending request to approved. The database-level
// conditional update is still the arbiter under concurrency; this method
// keeps illegal transitions out of the service layer.
func (r *RegistrationRequest) Approve(reviewer snowflake.ID, at time.Time) error {
	if r.Status.Terminal() {
		return ErrAlreadyDecided
	}
	r.Status = StatusApproved
	r.ReviewedBy = reviewer
	r.ReviewedAt = &at
	return nil
}

// Reject moves a pending request to rejected with a mandatory reason.
func (r *RegistrationRequest) Reject(reason string, reviewer snowflake.ID, at time.Time) error {
	if r.Status.Terminal() {
		return ErrAlreadyDecided
	}
	if reason == "" {
		return ErrReasonRequired
	}
	r.Status = StatusRejected
	r.RejectionReason = reason
	r.ReviewedBy = reviewer
	r.ReviewedAt = &at
	return nil
}

var (
	ErrRequestNotFound = errors.New("registration request not found")
	ErrRequestExists   = errors.New("a registration request is already pending approval")
	ErrAlreadyDecided  = errors.New("registration request already decided")
	ErrReasonRequired  = errors.New("rejection reason is required")
)
