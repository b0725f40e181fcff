package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Validate(t *testing.T) {
	cases := []struct {
		name    string
		session *Session
		wantErr bool
	}{
		{"valid", &Session{Token: "tok", User: &User{ID: "1", Name: "Alice"}}, false},
		{"nil session", nil, true},
		{"empty token", &Session{User: &User{ID: "1"}}, true},
		{"nil user", &Session{Token: "tok"}, true},
		{"user without id", &Session{Token: "tok", User: &User{Name: "Alice"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.session.Validate()
			if tc.wantErr {
				assert.True(t, IsDomainError(err, ErrCodeInvalidSession))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()

	t.Run("nil session is expired", func(t *testing.T) {
		var s *Session
		assert.True(t, s.IsExpired(now))
	})

	t.Run("no expiry never expires", func(t *testing.T) {
		s := &Session{Token: "tok"}
		assert.False(t, s.IsExpired(now))
	})

	t.Run("future expiry", func(t *testing.T) {
		s := &Session{ExpiresAt: now.Add(time.Hour)}
		assert.False(t, s.IsExpired(now))
	})

	t.Run("past expiry", func(t *testing.T) {
		s := &Session{ExpiresAt: now.Add(-time.Second)}
		assert.True(t, s.IsExpired(now))
	})
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Alice", (&User{Name: "Alice", Email: "a@example.com"}).DisplayName())
	assert.Equal(t, "a@example.com", (&User{Email: "a@example.com"}).DisplayName())
	assert.Equal(t, "", (*User)(nil).DisplayName())
}

func TestIsDomainError(t *testing.T) {
	wrapped := WrapError(ErrCodeNetwork, "identity server unreachable", assert.AnError)

	assert.True(t, IsDomainError(wrapped, ErrCodeNetwork))
	assert.False(t, IsDomainError(wrapped, ErrCodeInvalidCredentials))
	assert.False(t, IsDomainError(assert.AnError, ErrCodeNetwork))
}
