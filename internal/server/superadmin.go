package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bootstrapdomain "github.com/brightfund/brightfund/internal/bootstrap/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
)

type superadminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) SuperadminLogin(c *gin.Context) {
	var req superadminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.SystemLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type createOrganizationRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	EIN           string `json:"ein"`
	Website       string `json:"website"`
	Mission       string `json:"mission"`
	FiscalYearEnd string `json:"fiscal_year_end"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.bootstrapsvc.CreateOrganization(c.Request.Context(), orgdomain.CreateOrganizationRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		EIN:           req.EIN,
		Website:       req.Website,
		Mission:       req.Mission,
		FiscalYearEnd: req.FiscalYearEnd,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

type createOrganizationAdminRequest struct {
	OrganizationID  string `json:"organization_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	JobTitle        string `json:"job_title"`
	Department      string `json:"department"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// CreateOrganizationAdmin provisions the first administrator of a bootstrap
// organization. The role is fixed server-side; any role in the body is
// ignored.
func (s *Server) CreateOrganizationAdmin(c *gin.Context) {
	var req createOrganizationAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	admin, err := s.bootstrapsvc.CreateAdmin(c.Request.Context(), bootstrapdomain.CreateAdminRequest{
		OrgID:           req.OrganizationID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}
