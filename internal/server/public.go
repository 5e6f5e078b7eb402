package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightfund/brightfund/internal/rolecatalog"
	"github.com/brightfund/brightfund/internal/validation"
)

func (s *Server) ListPublicOrganizations(c *gin.Context) {
	orgs, err := s.orgsvc.PublicList(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

// ListRoles exposes the role catalog. Without a pathway parameter it returns
// the full catalog grouped by category; with one it returns the flat set a
// given registration pathway may assign.
func (s *Server) ListRoles(c *gin.Context) {
	switch c.Query("pathway") {
	case "":
		c.JSON(http.StatusOK, gin.H{"categories": rolecatalog.Grouped()})
	case "self":
		c.JSON(http.StatusOK, gin.H{"roles": validation.AllowedRoles(validation.PathwaySelfStaff)})
	case "join":
		c.JSON(http.StatusOK, gin.H{"roles": validation.AllowedRoles(validation.PathwayJoinRequest)})
	case "invite":
		c.JSON(http.StatusOK, gin.H{"roles": validation.AllowedRoles(validation.PathwayInvitation)})
	case "staff":
		c.JSON(http.StatusOK, gin.H{"roles": validation.AllowedRoles(validation.PathwayDirectStaff)})
	default:
		AbortWithError(c, invalidRequestError())
	}
}
