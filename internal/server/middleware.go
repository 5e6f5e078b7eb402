package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
)

const identityKey = "auth.identity"

// RequestLogger emits one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// AuthRequired verifies the bearer token and stores the caller identity on
// the context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present. A missing header
// is fine; a present but invalid token is still rejected.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		identity, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminRequired gates a route group to administrator identities.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !identity.IsAdmin() {
			AbortWithError(c, authdomain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// SystemRequired gates bootstrap routes to the system credential token.
func (s *Server) SystemRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !identity.System {
			AbortWithError(c, authdomain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (authdomain.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return authdomain.Identity{}, false
	}
	identity, ok := value.(authdomain.Identity)
	return identity, ok
}
