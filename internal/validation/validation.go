// Package validation holds the per-pathway field validators shared by every
// onboarding flow. Validation is fail-fast: rules run in a documented order
// and the first violation is returned alone, so the caller always surfaces
// exactly one message.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brightfund/brightfund/internal/rolecatalog"
)

// Pathway selects which rule set applies.
type Pathway int

const (
	PathwayBootstrapAdmin Pathway = iota
	PathwayDirectStaff
	PathwaySelfStaff
	PathwayJoinRequest
	PathwayInvitation
)

const MinPasswordLength = 8

// emailPattern is a pre-filter only. Authoritative uniqueness lives in the
// database unique index.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fields carries the submitted form values. Zero values are treated as
// absent.
type Fields struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	JobTitle        string
	Department      string
	Password        string
	ConfirmPassword string
	Role            string
}

// RuleError is the single first-failing-rule violation.
type RuleError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ruleError(field, code, message string) *RuleError {
	return &RuleError{Field: field, Code: code, Message: message}
}

// Validate runs the ordered rules for the pathway and returns the first
// violation, or nil when all rules pass. Rule order: required fields, email
// shape, password policy, role membership.
func Validate(pathway Pathway, f Fields) error {
	if err := requireNonEmpty("first_name", f.FirstName, "first name is required"); err != nil {
		return err
	}
	if err := requireNonEmpty("last_name", f.LastName, "last name is required"); err != nil {
		return err
	}
	if err := requireNonEmpty("email", f.Email, "email is required"); err != nil {
		return err
	}

	if staffPathway(pathway) {
		if err := requireNonEmpty("phone", f.Phone, "phone is required"); err != nil {
			return err
		}
		if err := requireNonEmpty("job_title", f.JobTitle, "job title is required"); err != nil {
			return err
		}
		if err := requireNonEmpty("department", f.Department, "department is required"); err != nil {
			return err
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return ruleError("email", "invalid_email", "email address is not valid")
	}

	if collectsPassword(pathway) {
		password := strings.TrimSpace(f.Password)
		if password == "" {
			return ruleError("password", "required", "password is required")
		}
		if len(password) < MinPasswordLength {
			return ruleError("password", "weak_password",
				fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
		}
		if f.Password != f.ConfirmPassword {
			return ruleError("confirm_password", "mismatch", "passwords do not match")
		}
	}

	return validateRole(pathway, f.Role)
}

func requireNonEmpty(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return ruleError(field, "required", message)
	}
	return nil
}

func staffPathway(p Pathway) bool {
	return p == PathwayDirectStaff || p == PathwaySelfStaff
}

func collectsPassword(p Pathway) bool {
	switch p {
	case PathwayBootstrapAdmin, PathwayDirectStaff, PathwaySelfStaff, PathwayJoinRequest:
		return true
	default:
		return false
	}
}

func validateRole(pathway Pathway, role string) error {
	// The bootstrap admin role is fixed server-side, never submitted.
	if pathway == PathwayBootstrapAdmin {
		return nil
	}

	key := strings.TrimSpace(role)
	if key == "" {
		return ruleError("role", "required", "role is required")
	}

	if !rolecatalog.Contains(AllowedRoles(pathway), key) {
		return ruleError("role", "role_not_permitted", "role not permitted for this registration")
	}
	return nil
}

// AllowedRoles returns the catalog subset a pathway may assign.
func AllowedRoles(pathway Pathway) []rolecatalog.Role {
	switch pathway {
	case PathwayDirectStaff:
		return rolecatalog.AdminAssignable()
	case PathwaySelfStaff:
		return rolecatalog.SelfRegistration()
	case PathwayJoinRequest:
		return rolecatalog.JoinRequest()
	case PathwayInvitation:
		return rolecatalog.InviteEligible()
	default:
		return nil
	}
}
