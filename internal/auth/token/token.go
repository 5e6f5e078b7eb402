// Package token issues and verifies the bearer tokens carried on the
// Authorization header. Tokens are HS256 JWTs with role and organization
// claims; the error kind (invalid vs expired) is decided here, once.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"

	"github.com/brightfund/brightfund/internal/auth/domain"
)

// Claims are the access-token claims shared by tenant and system tokens.
type Claims struct {
	jwt.RegisteredClaims

	// OrgID scopes tenant tokens to one organization. Empty on system
	// tokens.
	OrgID string `json:"org_id,omitempty"`

	// Role is the catalog role key, or "superadmin" for the system
	// credential.
	Role string `json:"role"`

	// System marks the escalated bootstrap credential.
	System bool `json:"system,omitempty"`
}

type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the identity. Expiry is now+TTL.
func (i *Issuer) Issue(identity domain.Identity, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:   identity.Role,
		System: identity.System,
	}
	if identity.OrgID != 0 {
		claims.OrgID = identity.OrgID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a raw token and returns the caller identity.
func (i *Issuer) Verify(raw string) (domain.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	identity := domain.Identity{
		Role:   claims.Role,
		System: claims.System,
	}
	if claims.Subject != "" {
		userID, err := snowflake.ParseString(claims.Subject)
		if err != nil {
			return domain.Identity{}, domain.ErrInvalidToken
		}
		identity.UserID = userID
	}
	if claims.OrgID != "" {
		orgID, err := snowflake.ParseString(claims.OrgID)
		if err != nil {
			return domain.Identity{}, domain.ErrInvalidToken
		}
		identity.OrgID = orgID
	}
	return identity, nil
}
