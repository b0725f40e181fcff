package transport

import (
	"time"

	"github.com/5dpapa/portfolio/domain"
)

// Envelope is the standard response wrapper used for both success and error
// payloads, on the identity server side and on the local callback listener.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope.
func NewError(code string, err interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
	}
}

// SessionPayload is the {token, user} shape every login pathway resolves to.
type SessionPayload struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	IssuedAt  time.Time    `json:"issued_at,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitempty"`
}

// SessionEnvelope is the typed envelope returned by the identity server's
// login and oauth exchange endpoints.
type SessionEnvelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code,omitempty"`
	Data   *SessionPayload `json:"data,omitempty"`
	Error  interface{}     `json:"error,omitempty"`
}

// SessionView is the read-only projection of store state served to local UI
// consumers such as the navbar.
type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}
