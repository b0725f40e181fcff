package transport

// LoginRequest is the credential payload sent to the identity server.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OAuthExchangeRequest carries a provider access token to the identity server
// so it can be exchanged for a first-party session.
type OAuthExchangeRequest struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
