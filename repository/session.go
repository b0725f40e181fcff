package repository

import (
	"context"

	"github.com/5dpapa/portfolio/domain"
)

// SessionRepository is the durability backstop for the one logical session the
// client holds. Implementations store a single serialized record under a fixed
// key; the in-memory store remains the source of truth while the process is
// alive.
type SessionRepository interface {
	// Load returns the persisted session. It returns domain.ErrSessionNotFound
	// when nothing is stored and domain.ErrCorruptRecord when the stored
	// payload cannot be decoded.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context) error
}
