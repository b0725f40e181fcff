package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/internal/oauth"
)

// attemptTTL bounds how long an authorize redirect may stay pending before
// its state is rejected.
const attemptTTL = 5 * time.Minute

type attempt struct {
	provider  string
	verifier  string
	startedAt time.Time
}

// flowState tracks pending OAuth attempts between the hand-off (phase 1) and
// the provider callback (phase 2). Each attempt is consumed exactly once.
type flowState struct {
	mu      sync.Mutex
	pending map[string]attempt
	results chan domain.LoginResult
}

func newFlowState() *flowState {
	return &flowState{
		pending: make(map[string]attempt),
		results: make(chan domain.LoginResult, 8),
	}
}

func (f *flowState) add(state string, a attempt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for s, pending := range f.pending {
		if time.Since(pending.startedAt) > attemptTTL {
			delete(f.pending, s)
		}
	}
	f.pending[state] = a
}

// consume removes and returns the attempt bound to state. An unknown or
// expired state leaves the table untouched beyond the expiry sweep.
func (f *flowState) consume(state string) (attempt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.pending[state]
	if !ok {
		return attempt{}, false
	}
	delete(f.pending, state)
	if time.Since(a.startedAt) > attemptTTL {
		return attempt{}, false
	}
	return a, true
}

// LoginWithGoogle starts the Google redirect flow and returns the authorize
// URL the caller must navigate to. No session is produced here: control
// leaves the application and resumes at the callback route.
func (c *Client) LoginWithGoogle() (string, error) {
	return c.begin("google")
}

// LoginWithFacebook starts the Facebook redirect flow.
func (c *Client) LoginWithFacebook() (string, error) {
	return c.begin("facebook")
}

func (c *Client) begin(providerName string) (string, error) {
	provider, err := c.registry.Get(providerName)
	if err != nil {
		return "", err
	}

	state := oauth.GenerateState()
	verifier, challenge := oauth.GeneratePKCE()

	c.flows.add(state, attempt{
		provider:  providerName,
		verifier:  verifier,
		startedAt: time.Now(),
	})

	url := provider.AuthCodeURL(state, challenge)
	c.logger.Info("oauth flow started", zap.String("provider", providerName))
	return url, nil
}

// CompleteOAuth resumes a redirect flow from the callback route. It validates
// and consumes the pending state, exchanges the authorization code with the
// provider, normalizes the result through the identity server and installs
// the session. Every round trip ends in exactly one SetAuth or one classified
// failure — the store is never left in limbo. The outcome is also emitted on
// Results.
func (c *Client) CompleteOAuth(ctx context.Context, providerName, state, code, errParam string) domain.LoginResult {
	pending, ok := c.flows.consume(state)
	if !ok || pending.provider != providerName {
		return c.fail(providerName, domain.ErrStaleOAuthState)
	}

	if errParam != "" {
		c.logger.Info("oauth consent denied",
			zap.String("provider", providerName),
			zap.String("provider_error", errParam),
		)
		return c.fail(providerName, domain.ErrOAuthDenied)
	}

	provider, err := c.registry.Get(providerName)
	if err != nil {
		return c.fail(providerName, err)
	}

	token, err := provider.Exchange(ctx, code, pending.verifier)
	if err != nil {
		c.logger.Warn("oauth code exchange failed",
			zap.String("provider", providerName),
			zap.Error(err),
		)
		return c.fail(providerName, domain.WrapError(domain.ErrCodeNetwork, "provider token exchange failed", err))
	}

	sess, err := c.identity.ExchangeOAuth(ctx, providerName, token)
	if err != nil {
		return c.fail(providerName, err)
	}

	if err := c.store.SetAuth(ctx, sess); err != nil {
		return c.fail(providerName, err)
	}

	result := domain.LoginResult{Provider: providerName, Session: sess}
	c.emit(result)
	return result
}

func (c *Client) fail(providerName string, err error) domain.LoginResult {
	result := domain.LoginResult{Provider: providerName, Err: err}
	c.emit(result)
	return result
}

func (c *Client) emit(result domain.LoginResult) {
	select {
	case c.flows.results <- result:
	default:
		c.logger.Warn("login result dropped, channel full",
			zap.String("provider", result.Provider),
		)
	}
}
