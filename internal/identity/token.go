package identity

import (
	"github.com/golang-jwt/jwt/v4"

	"github.com/5dpapa/portfolio/domain"
)

// enrichFromToken lifts exp/iat claims out of a JWT access token when the
// identity payload omitted explicit timestamps. The parse is unverified: the
// client is not the token's audience and only needs the expiry to schedule
// proactive invalidation. Opaque non-JWT tokens are left untouched.
func enrichFromToken(session *domain.Session) {
	if session == nil || session.Token == "" {
		return
	}
	if !session.ExpiresAt.IsZero() && !session.IssuedAt.IsZero() {
		return
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.Token, &claims); err != nil {
		return
	}

	if session.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if session.IssuedAt.IsZero() && claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
}
