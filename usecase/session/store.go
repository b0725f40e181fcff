package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/repository"
)

// Subscriber receives the new canonical state after every store transition.
// A nil session means Anonymous.
type Subscriber func(session *domain.Session)

// Store is the single source of truth for "who is logged in". The in-memory
// session is canonical while the process is alive; the repository is the
// durability backstop read once at startup via Rehydrate.
//
// Mutations are serialized end-to-end, notification included, so every
// subscriber observes transitions in the exact order SetAuth/Clear/Rehydrate
// were invoked.
type Store struct {
	repo   repository.SessionRepository
	logger *zap.Logger

	// mu serializes mutations; stateMu guards reads so subscribers may call
	// GetSession from inside their callback without deadlocking.
	mu      sync.Mutex
	stateMu sync.RWMutex
	current *domain.Session
	subs    map[string]Subscriber
}

// New creates a session store backed by the given repository.
func New(repo repository.SessionRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		logger: logger,
		subs:   make(map[string]Subscriber),
	}
}

// GetSession returns the current session, or nil when Anonymous. It never
// blocks on storage and never fails.
func (s *Store) GetSession() *domain.Session {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current
}

// Authenticated reports whether a session is currently held.
func (s *Store) Authenticated() bool {
	return s.GetSession() != nil
}

// SetAuth replaces the current state with the given session. The replace is
// total: no field of a previous session survives. The session is persisted and
// every subscriber is notified exactly once. A malformed session is rejected
// with ErrInvalidSession and the state is left untouched.
func (s *Store) SetAuth(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		s.logger.Error("rejected malformed session", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, session); err != nil {
		// Memory stays canonical: a persistence hiccup costs durability
		// across restarts, not the live session.
		s.logger.Warn("session not persisted", zap.Error(err))
	}

	s.apply(session)
	s.logger.Info("session established",
		zap.String("user_id", session.User.ID),
		zap.Time("expires_at", session.ExpiresAt),
	)
	return nil
}

// Clear transitions to Anonymous, removes the persisted record and notifies
// subscribers. Clearing an already Anonymous store is a no-op: no state
// change, no notification.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetSession() == nil {
		return
	}

	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("persisted session not removed", zap.Error(err))
	}

	s.apply(nil)
	s.logger.Info("session cleared")
}

// Rehydrate loads the persisted session at process start. A missing, corrupt
// or expired record yields Anonymous without error: a cold start is an
// expected condition, not a fault. Rehydrate must run before consumers read
// state; it notifies subscribers only when it produces a session.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.Load(ctx)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			s.logger.Warn("discarding unreadable session record", zap.Error(err))
		}
		return
	}

	if session.Validate() != nil || session.IsExpired(time.Now()) {
		s.logger.Info("discarding stale session record")
		if err := s.repo.Delete(ctx); err != nil {
			s.logger.Warn("stale session record not removed", zap.Error(err))
		}
		return
	}

	s.apply(session)
	s.logger.Info("session rehydrated", zap.String("user_id", session.User.ID))
}

// Subscribe registers a consumer for state transitions and returns an id for
// Unsubscribe. Subscribers are invoked synchronously with only the latest
// state, never a replay of history.
func (s *Store) Subscribe(fn Subscriber) string {
	id := uuid.NewString()
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.subs[id] = fn
	return id
}

// Unsubscribe removes a previously registered subscriber.
func (s *Store) Unsubscribe(id string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	delete(s.subs, id)
}

// apply installs the new state and notifies a snapshot of the subscriber list.
// Callers hold mu.
func (s *Store) apply(session *domain.Session) {
	s.stateMu.Lock()
	s.current = session
	snapshot := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		snapshot = append(snapshot, fn)
	}
	s.stateMu.Unlock()

	for _, fn := range snapshot {
		fn(session)
	}
}
