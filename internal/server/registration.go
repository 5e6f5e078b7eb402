package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	joinrequestdomain "github.com/brightfund/brightfund/internal/joinrequest/domain"
)

type registrationRequestBody struct {
	OrganizationID  string `json:"organization_id"`
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

func (s *Server) CreateRegistrationRequest(c *gin.Context) {
	var req registrationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.joinreqsvc.Create(c.Request.Context(), joinrequestdomain.CreateRequest{
		OrgID:           req.OrganizationID,
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

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListRegistrationRequests(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.joinreqsvc.List(c.Request.Context(), identity, c.Param("organization_id"), joinrequestdomain.ListFilter{
		Status: joinrequestdomain.RequestStatus(c.Query("status")),
		Search: c.Query("search"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type decisionRequestBody struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
}

func (s *Server) ApproveRegistrationRequest(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req decisionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.joinreqsvc.Approve(c.Request.Context(), identity, req.RequestID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) RejectRegistrationRequest(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req decisionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.joinreqsvc.Reject(c.Request.Context(), identity, req.RequestID, req.Reason)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
