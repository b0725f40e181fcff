package oauth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

// Provider wraps one external OAuth provider's authorize/exchange endpoints.
// Providers return token facts only; session decisions happen elsewhere.
type Provider struct {
	name string
	cfg  *oauth2.Config
}

// Name returns the provider identifier used by the registry and routes.
func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL builds the authorization URL carrying the state and the PKCE
// S256 challenge.
func (p *Provider) AuthCodeURL(state, codeChallenge string) string {
	return p.cfg.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Exchange trades the authorization code for provider credentials.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	return p.cfg.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
}

// NewGoogle configures the Google provider.
func NewGoogle(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		name: "google",
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
	}
}

// NewFacebook configures the Facebook provider.
func NewFacebook(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		name: "facebook",
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     facebook.Endpoint,
			Scopes:       []string{"public_profile", "email"},
		},
	}
}

// NewProvider configures a provider against arbitrary endpoints. Tests use it
// to point exchanges at a stub server.
func NewProvider(name string, cfg *oauth2.Config) *Provider {
	return &Provider{name: name, cfg: cfg}
}
