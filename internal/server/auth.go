package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	staffdomain "github.com/brightfund/brightfund/internal/staff/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type registerStaffRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	JobTitle        string `json:"job_title"`
	Department      string `json:"department"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterStaff serves both trust levels of staff provisioning: with an
// admin bearer token the full assignable role set is available and the
// account lands in the admin's organization; without a token the restricted
// self-service rules apply.
func (s *Server) RegisterStaff(c *gin.Context) {
	var req registerStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var actor *authdomain.Identity
	if identity, ok := identityFrom(c); ok {
		if !identity.IsAdmin() {
			AbortWithError(c, authdomain.ErrForbidden)
			return
		}
		actor = &identity
	}

	staff, err := s.staffsvc.Register(c.Request.Context(), actor, staffdomain.RegisterRequest{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
		Role:            req.Role,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, staff)
}
