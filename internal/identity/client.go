package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/5dpapa/portfolio/api/transport"
	"github.com/5dpapa/portfolio/domain"
)

// API is the client-side contract of the identity server. Both entry points
// resolve to the same {token, user} payload, so every login pathway shares one
// normalization path.
type API interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	ExchangeOAuth(ctx context.Context, provider string, token *oauth2.Token) (*domain.Session, error)
}

// Client talks to the identity server over HTTP.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates an identity API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}
}

// Login exchanges a username/password pair for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	payload := transport.LoginRequest{
		Username: username,
		Password: password,
	}
	return c.post(ctx, "/login", payload)
}

// ExchangeOAuth posts a provider access token so the identity server can
// verify it upstream and issue the same {token, user} payload as Login.
func (c *Client) ExchangeOAuth(ctx context.Context, provider string, token *oauth2.Token) (*domain.Session, error) {
	if token == nil || token.AccessToken == "" {
		return nil, domain.WrapError(domain.ErrCodeUnexpectedResponse, "provider returned no access token", nil)
	}
	payload := transport.OAuthExchangeRequest{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
	return c.post(ctx, "/oauth/"+provider, payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*domain.Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "encode request", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Warn("identity request failed", zap.String("path", path), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeNetwork, "identity server unreachable", err)
	}

	return c.decode(path, resp.StatusCode(), resp.Body())
}

// decode normalizes the identity server's envelope into a session or a
// classified error. Rejected credentials and server contract violations are
// kept distinct so callers can suggest retry vs. correction.
func (c *Client) decode(path string, status int, body []byte) (*domain.Session, error) {
	var envelope transport.SessionEnvelope
	decodable := json.Unmarshal(body, &envelope) == nil

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		reason := envelope.Code
		c.logger.Info("identity rejected credentials",
			zap.String("path", path),
			zap.String("reason", reason),
		)
		return nil, domain.ErrInvalidCredentials
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return nil, domain.WrapError(domain.ErrCodeUnexpectedResponse,
			fmt.Sprintf("identity server returned status %d", status), nil)
	}

	if !decodable || envelope.Data == nil {
		return nil, domain.WrapError(domain.ErrCodeUnexpectedResponse, "undecodable identity payload", nil)
	}

	session := &domain.Session{
		Token:     envelope.Data.Token,
		User:      envelope.Data.User,
		IssuedAt:  envelope.Data.IssuedAt,
		ExpiresAt: envelope.Data.ExpiresAt,
	}
	if session.Token == "" || session.User == nil || session.User.ID == "" {
		return nil, domain.WrapError(domain.ErrCodeUnexpectedResponse, "identity payload missing token or user", nil)
	}

	enrichFromToken(session)
	return session, nil
}
