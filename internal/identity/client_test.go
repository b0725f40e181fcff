package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/5dpapa/portfolio/api/transport"
	"github.com/5dpapa/portfolio/domain"
)

func sessionBody(t *testing.T, token string) []byte {
	t.Helper()
	body, err := json.Marshal(transport.SessionEnvelope{
		Status: "success",
		Data: &transport.SessionPayload{
			Token: token,
			User:  &domain.User{ID: "1", Name: "Alice"},
		},
	})
	require.NoError(t, err)
	return body
}

func TestClient_Login(t *testing.T) {
	t.Run("well-formed success yields session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/login", r.URL.Path)
			var req transport.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "correct", req.Password)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(sessionBody(t, "tok123"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		sess, err := client.Login(context.Background(), "alice", "correct")

		require.NoError(t, err)
		assert.Equal(t, "tok123", sess.Token)
		assert.Equal(t, "1", sess.User.ID)
		assert.Equal(t, "Alice", sess.User.Name)
	})

	t.Run("401 classified as invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","code":"INVALID_CREDENTIALS","error":"invalid username or password"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		_, err := client.Login(context.Background(), "alice", "wrong")

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidCredentials))
	})

	t.Run("unreachable server classified as network", func(t *testing.T) {
		server := httptest.NewServer(nil)
		server.Close()

		client := NewClient(server.URL, time.Second, nil)
		_, err := client.Login(context.Background(), "alice", "correct")

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeNetwork))
	})

	t.Run("missing token is a contract violation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"user":{"id":"1","name":"Alice"}}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		_, err := client.Login(context.Background(), "alice", "correct")

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnexpectedResponse))
	})

	t.Run("undecodable payload is a contract violation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway error</html>`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		_, err := client.Login(context.Background(), "alice", "correct")

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnexpectedResponse))
	})

	t.Run("server error is not invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","code":"INTERNAL"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		_, err := client.Login(context.Background(), "alice", "correct")

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnexpectedResponse))
	})
}

func TestClient_ExchangeOAuth(t *testing.T) {
	t.Run("posts provider token and decodes session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth/google", r.URL.Path)
			var req transport.OAuthExchangeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "provider-token", req.AccessToken)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(sessionBody(t, "tok456"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second, nil)
		sess, err := client.ExchangeOAuth(context.Background(), "google", &oauth2.Token{
			AccessToken: "provider-token",
			TokenType:   "bearer",
		})

		require.NoError(t, err)
		assert.Equal(t, "tok456", sess.Token)
	})

	t.Run("rejects empty provider token locally", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second, nil)
		_, err := client.ExchangeOAuth(context.Background(), "google", &oauth2.Token{})

		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnexpectedResponse))
	})
}

func TestEnrichFromToken(t *testing.T) {
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	t.Run("lifts exp and iat from jwt", func(t *testing.T) {
		sess := &domain.Session{Token: signed, User: &domain.User{ID: "1"}}
		enrichFromToken(sess)

		assert.True(t, sess.ExpiresAt.Equal(expires))
		assert.True(t, sess.IssuedAt.Equal(issued))
	})

	t.Run("explicit timestamps win", func(t *testing.T) {
		explicit := time.Now().Add(2 * time.Hour)
		sess := &domain.Session{
			Token:     signed,
			User:      &domain.User{ID: "1"},
			IssuedAt:  issued,
			ExpiresAt: explicit,
		}
		enrichFromToken(sess)

		assert.True(t, sess.ExpiresAt.Equal(explicit))
	})

	t.Run("opaque token left untouched", func(t *testing.T) {
		sess := &domain.Session{Token: "not-a-jwt", User: &domain.User{ID: "1"}}
		enrichFromToken(sess)

		assert.True(t, sess.ExpiresAt.IsZero())
	})
}
