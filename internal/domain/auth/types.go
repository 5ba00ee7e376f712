package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// OAuthToken is the provider-issued token set carried inside the session
// cookie. ExpiresAt is absolute wall-clock time in epoch milliseconds,
// computed at issue time from the provider-reported lifetime.
type OAuthToken struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	Scope        string `json:"scope"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// ExpiredAt reports whether the access token is expired at the given
// instant, applying the supplied skew so a token about to lapse is
// treated as already expired.
func (t OAuthToken) ExpiredAt(now time.Time, skew time.Duration) bool {
	return now.UnixMilli() >= t.ExpiresAt-skew.Milliseconds()
}

// Session is the durable authenticated session. The browser cookie is its
// only home: the server verifies and re-issues it but never stores it.
type Session struct {
	UserID string     `json:"userId"`
	Token  OAuthToken `json:"token"`
}

// HasRefreshToken reports whether the session can be refreshed without a
// full re-login.
func (s Session) HasRefreshToken() bool { return s.Token.RefreshToken != "" }

// WithRefreshedToken returns a new session carrying the replacement token.
// When the provider omits a refresh token on refresh, the prior one is
// preserved so the session stays refreshable.
func (s Session) WithRefreshedToken(token OAuthToken) Session {
	if token.RefreshToken == "" {
		token.RefreshToken = s.Token.RefreshToken
	}
	return Session{UserID: s.UserID, Token: token}
}

// Transient is the short-lived OAuth login state: the anti-CSRF state
// parameter and the PKCE code verifier, created at login initiation and
// consumed exactly once at callback time. CreatedAt is epoch milliseconds.
type Transient struct {
	State        string `json:"state"`
	CodeVerifier string `json:"codeVerifier"`
	CreatedAt    int64  `json:"createdAt"`
}

// Identity is the authenticated principal returned by the provider's
// identity endpoint.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
