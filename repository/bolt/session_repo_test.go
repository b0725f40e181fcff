package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	boltdb "go.etcd.io/bbolt"

	"github.com/5dpapa/portfolio/domain"
)

func openTempRepo(t *testing.T) (*sessionRepository, func() error) {
	t.Helper()
	repo, closeFn, err := Open(filepath.Join(t.TempDir(), "session.db"), "session")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return repo.(*sessionRepository), closeFn
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTempRepo(t)

	want := &domain.Session{
		Token:     "tok123",
		User:      &domain.User{ID: "1", Name: "Alice", Email: "alice@example.com"},
		IssuedAt:  time.Now().Truncate(time.Second),
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.User.ID, got.User.ID)
	assert.Equal(t, want.User.Email, got.User.Email)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
}

func TestSessionRepository_LoadMissing(t *testing.T) {
	repo, _ := openTempRepo(t)

	_, err := repo.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo, _ := openTempRepo(t)

	require.NoError(t, repo.Save(ctx, &domain.Session{
		Token: "tok123",
		User:  &domain.User{ID: "1", Name: "Alice"},
	}))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Load(ctx)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	// Deleting an empty store is fine.
	assert.NoError(t, repo.Delete(ctx))
}

func TestSessionRepository_SaveRejectsMalformed(t *testing.T) {
	repo, _ := openTempRepo(t)

	err := repo.Save(context.Background(), &domain.Session{Token: ""})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidSession))
}

func TestSessionRepository_CorruptRecord(t *testing.T) {
	repo, _ := openTempRepo(t)

	// Scribble over the record the way a partial write would.
	err := repo.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(repo.bucket).Put([]byte(recordKey), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
