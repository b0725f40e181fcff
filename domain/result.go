package domain

// LoginResult is the tagged outcome of one authentication round trip. Exactly
// one of Session or Err is set, never both. Credential logins return their
// result directly; OAuth flows deliver one LoginResult per attempted round
// trip once the provider callback resolves.
type LoginResult struct {
	Provider string
	Session  *Session
	Err      error
}

// Succeeded reports whether the round trip produced a session.
func (r LoginResult) Succeeded() bool {
	return r.Session != nil && r.Err == nil
}
