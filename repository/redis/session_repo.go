package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/repository"
)

type sessionRepository struct {
	client *redislib.Client
	key    string
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session repository. The record
// TTL mirrors the session expiry when present, falling back to the given ttl.
func NewSessionRepository(client *redislib.Client, key string, ttl time.Duration) repository.SessionRepository {
	if key == "" {
		key = "portfolio:session"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionRepository{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	result, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "session record corrupt", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := r.ttl
	if !session.ExpiresAt.IsZero() {
		if until := time.Until(session.ExpiresAt); until > 0 {
			ttl = until
		}
	}

	return r.client.Set(ctx, r.key, payload, ttl).Err()
}

func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
