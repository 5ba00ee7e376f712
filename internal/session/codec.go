// Package session encodes and decodes the two signed cookie payloads the
// service relies on: the durable auth session and the short-lived OAuth
// transient state. The browser is the only place either payload lives; the
// server verifies and re-issues but never stores them.
package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitx/ui-api/internal/cryptoutil"
	"github.com/hitx/ui-api/internal/domain/auth"
)

const (
	// SessionCookieName carries the durable auth session.
	SessionCookieName = "hitx_session"
	// TransientCookieName carries OAuth state and PKCE verifier between
	// login initiation and callback.
	TransientCookieName = "hitx_oauth_transient"

	// schemaVersion must match exactly or the payload is invalid.
	schemaVersion = 1

	sessionMaxAge = 30 * 24 * time.Hour
	// TransientMaxAge is enforced twice: as the cookie max-age and as an
	// application-level check on createdAt, so an expired cookie that
	// survives a clock or proxy anomaly is still rejected.
	TransientMaxAge = 10 * time.Minute
)

type sessionPayload struct {
	V      int             `json:"v"`
	UserID string          `json:"userId"`
	Token  auth.OAuthToken `json:"token"`
}

type transientPayload struct {
	V            int    `json:"v"`
	State        string `json:"state"`
	CodeVerifier string `json:"codeVerifier"`
	CreatedAt    int64  `json:"createdAt"`
}

// Codec signs, verifies, and shapes the auth cookies. It is immutable and
// safe for concurrent use.
type Codec struct {
	secret       []byte
	secure       bool
	cookieDomain string
	now          func() time.Time
}

// CodecOptions groups construction parameters for Codec.
type CodecOptions struct {
	// Secret is the process-wide HMAC signing secret.
	Secret string
	// Secure sets the cookie Secure flag (on in production).
	Secure bool
	// CookieDomain scopes cookies to a domain; empty uses the request host.
	CookieDomain string
	// Now overrides the clock for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewCodec constructs a Codec.
func NewCodec(opts CodecOptions) *Codec {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret:       []byte(opts.Secret),
		secure:       opts.Secure,
		cookieDomain: opts.CookieDomain,
		now:          now,
	}
}

func (c *Codec) baseCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.cookieDomain,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// SessionCookie serializes and signs a durable session cookie (30 days).
func (c *Codec) SessionCookie(sess auth.Session) (*http.Cookie, error) {
	payload, err := json.Marshal(sessionPayload{
		V:      schemaVersion,
		UserID: sess.UserID,
		Token:  sess.Token,
	})
	if err != nil {
		return nil, err
	}
	value := cryptoutil.SignedToken(payload, c.secret)
	return c.baseCookie(SessionCookieName, value, int(sessionMaxAge.Seconds())), nil
}

// DecodeSession verifies and parses a raw session cookie value. It never
// fails loudly: a corrupted, tampered, or shape-invalid cookie degrades to
// (zero, false) so the caller falls back to requiring a fresh login.
func (c *Codec) DecodeSession(raw string) (auth.Session, bool) {
	if raw == "" {
		return auth.Session{}, false
	}
	payload, ok := cryptoutil.VerifySignedToken(raw, c.secret)
	if !ok {
		return auth.Session{}, false
	}

	var parsed sessionPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return auth.Session{}, false
	}
	if parsed.V != schemaVersion || parsed.UserID == "" || parsed.Token.AccessToken == "" {
		return auth.Session{}, false
	}
	return auth.Session{UserID: parsed.UserID, Token: parsed.Token}, true
}

// ReadSession extracts and decodes the session cookie from a request.
func (c *Codec) ReadSession(r *http.Request) (auth.Session, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return auth.Session{}, false
	}
	return c.DecodeSession(cookie.Value)
}

// TransientCookie serializes and signs the OAuth transient cookie (10 min),
// stamping createdAt from the codec clock.
func (c *Codec) TransientCookie(state, codeVerifier string) (*http.Cookie, error) {
	payload, err := json.Marshal(transientPayload{
		V:            schemaVersion,
		State:        state,
		CodeVerifier: codeVerifier,
		CreatedAt:    c.now().UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	value := cryptoutil.SignedToken(payload, c.secret)
	return c.baseCookie(TransientCookieName, value, int(TransientMaxAge.Seconds())), nil
}

// DecodeTransient verifies and parses a raw transient cookie value,
// rejecting payloads older than TransientMaxAge regardless of the cookie's
// own max-age.
func (c *Codec) DecodeTransient(raw string) (auth.Transient, bool) {
	if raw == "" {
		return auth.Transient{}, false
	}
	payload, ok := cryptoutil.VerifySignedToken(raw, c.secret)
	if !ok {
		return auth.Transient{}, false
	}

	var parsed transientPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return auth.Transient{}, false
	}
	if parsed.V != schemaVersion || parsed.State == "" || parsed.CodeVerifier == "" {
		return auth.Transient{}, false
	}
	if c.now().UnixMilli()-parsed.CreatedAt > TransientMaxAge.Milliseconds() {
		return auth.Transient{}, false
	}
	return auth.Transient{
		State:        parsed.State,
		CodeVerifier: parsed.CodeVerifier,
		CreatedAt:    parsed.CreatedAt,
	}, true
}

// ReadTransient extracts and decodes the transient cookie from a request.
func (c *Codec) ReadTransient(r *http.Request) (auth.Transient, bool) {
	cookie, err := r.Cookie(TransientCookieName)
	if err != nil {
		return auth.Transient{}, false
	}
	return c.DecodeTransient(cookie.Value)
}

// ClearSessionCookie re-issues the session cookie empty and expired.
func (c *Codec) ClearSessionCookie() *http.Cookie {
	return c.baseCookie(SessionCookieName, "", -1)
}

// ClearTransientCookie re-issues the transient cookie empty and expired.
func (c *Codec) ClearTransientCookie() *http.Cookie {
	return c.baseCookie(TransientCookieName, "", -1)
}
