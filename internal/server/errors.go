package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	joinrequestdomain "github.com/brightfund/brightfund/internal/joinrequest/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	staffdomain "github.com/brightfund/brightfund/internal/staff/domain"
	"github.com/brightfund/brightfund/internal/validation"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware translates the last error recorded on the context
// into the wire error payload. The HTTP class of an error is decided here,
// once, from sentinel identity; handlers and services never inspect
// messages to classify failures.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{Field: "request", Code: "invalid_request", Message: "invalid request"},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) && vErrs != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	var ruleErr *validation.RuleError
	if errors.As(err, &ruleErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: ruleErr.Field, Code: ruleErr.Code, Message: ruleErr.Message},
			},
		}
	}

	switch {
	case isValidationSentinel(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired),
		errors.Is(err, authdomain.ErrInactiveUser):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, conflictPayload("email_exists", "an account with this email already exists")
	case errors.Is(err, joinrequestdomain.ErrRequestExists):
		return http.StatusConflict, conflictPayload("request_exists", "a registration request is already pending approval")
	case errors.Is(err, joinrequestdomain.ErrAlreadyDecided):
		return http.StatusConflict, conflictPayload("already_decided", "this request has already been decided")
	case errors.Is(err, orgdomain.ErrOrganizationExists):
		return http.StatusConflict, conflictPayload("organization_exists", "an organization with this name already exists")
	case errors.Is(err, orgdomain.ErrOrganizationNotFound),
		errors.Is(err, joinrequestdomain.ErrRequestNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, staffdomain.ErrNoDefaultOrganization),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func conflictPayload(code, message string) errorPayload {
	return errorPayload{
		Type:    "conflict",
		Code:    code,
		Message: message,
	}
}

func isValidationSentinel(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, orgdomain.ErrInvalidName),
		errors.Is(err, orgdomain.ErrInvalidEmail),
		errors.Is(err, orgdomain.ErrInvalidOrganization),
		errors.Is(err, joinrequestdomain.ErrReasonRequired):
		return true
	default:
		return false
	}
}
