package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/internal/identity"
	"github.com/5dpapa/portfolio/internal/oauth"
	"github.com/5dpapa/portfolio/usecase/session"
)

// Credentials is a username/password pair supplied by a login form.
type Credentials struct {
	Username string
	Password string
}

// Client encapsulates the three login pathways and normalizes every outcome
// into the same session shape. It is the only component that writes into the
// session store: credential logins apply their result directly, OAuth flows
// apply theirs when the provider callback resolves.
type Client struct {
	identity identity.API
	registry *oauth.Registry
	store    *session.Store
	logger   *zap.Logger

	flows *flowState
}

// New creates an auth client writing into the given store.
func New(api identity.API, registry *oauth.Registry, store *session.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		identity: api,
		registry: registry,
		store:    store,
		logger:   logger,
		flows:    newFlowState(),
	}
}

// Login authenticates with the identity server and, on success, installs the
// resulting session. Failures are classified — invalid credentials, network,
// unexpected response — and leave the store untouched. Racing calls are safe:
// SetAuth is a full replace, so whichever response lands last wins.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.Session, error) {
	sess, err := c.identity.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		c.logger.Info("credential login failed", zap.Error(err))
		return nil, err
	}

	if err := c.store.SetAuth(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout clears the session store and the persisted record.
func (c *Client) Logout(ctx context.Context) {
	c.store.Clear(ctx)
}

// Results exposes one LoginResult per completed OAuth round trip, so UI
// surfaces that did not initiate the flow can still observe its outcome.
func (c *Client) Results() <-chan domain.LoginResult {
	return c.flows.results
}
