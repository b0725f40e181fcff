package domain

import "time"

// Session represents the authenticated identity held by the client process.
// The token is opaque: the client assumes nothing about its internal structure
// beyond what the issuing server chose to expose.
type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Validate reports whether the session satisfies the minimum shape the store
// accepts: a non-empty token and a non-nil user with an identifier.
func (s *Session) Validate() error {
	if s == nil {
		return ErrInvalidSession
	}
	if s.Token == "" {
		return WrapError(ErrCodeInvalidSession, "session token is empty", nil)
	}
	if s.User == nil || s.User.ID == "" {
		return WrapError(ErrCodeInvalidSession, "session user is missing", nil)
	}
	return nil
}

// IsExpired reports whether the session's expiry has passed relative to the
// given reference time. Sessions without an expiry never expire client-side.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
