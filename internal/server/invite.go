package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invitationdomain "github.com/brightfund/brightfund/internal/invitation/domain"
)

type inviteUserRequest struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	JobTitle            string `json:"job_title"`
	Department          string `json:"department"`
	Role                string `json:"role"`
	SendInvitationEmail bool   `json:"send_invitation_email"`
}

func (s *Server) InviteUser(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req inviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invite, err := s.invitesvc.Invite(c.Request.Context(), identity, invitationdomain.InviteRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Role:       req.Role,
		SendEmail:  req.SendInvitationEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invite)
}
