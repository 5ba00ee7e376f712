package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hitx/ui-api/internal/apperror"
	domainauth "github.com/hitx/ui-api/internal/domain/auth"
	"github.com/hitx/ui-api/internal/ports"
	"github.com/hitx/ui-api/internal/session"
)

// ExpirySkew treats a token as expired this long before its actual expiry,
// so a request never departs with a token that lapses mid-flight.
const ExpirySkew = 60 * time.Second

// SessionGuardOptions groups dependencies for SessionGuard.
type SessionGuardOptions struct {
	Codec    *session.Codec
	Provider ports.TokenProvider
	// Now overrides the clock for tests. Defaults to time.Now.
	Now func() time.Time
}

// SessionGuard resolves a raw session cookie into a usable session,
// refreshing the access token when it is expired and a refresh token is
// available. It performs at most one refresh per resolution.
type SessionGuard struct {
	codec    *session.Codec
	provider ports.TokenProvider
	now      func() time.Time
}

// NewSessionGuard constructs a new SessionGuard.
func NewSessionGuard(opts SessionGuardOptions) *SessionGuard {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionGuard{
		codec:    opts.Codec,
		provider: opts.Provider,
		now:      now,
	}
}

// Resolution is the outcome of resolving a session cookie. When Refreshed
// is true the caller must re-issue the session cookie so the browser picks
// up the replacement token.
type Resolution struct {
	Session   domainauth.Session
	Refreshed bool
}

// Resolve verifies the raw session cookie value and guarantees the returned
// session carries a currently valid access token.
//
// Outcomes:
//   - missing or invalid cookie: AUTH_REQUIRED
//   - token expired, no refresh token: TOKEN_EXPIRED
//   - token expired, refresh token present: one refresh attempt; on success
//     the resolution carries the refreshed session, on failure the refresh
//     error propagates unchanged (a provider rejection is TOKEN_REVOKED)
func (g *SessionGuard) Resolve(ctx context.Context, rawCookie string) (Resolution, error) {
	sess, ok := g.codec.DecodeSession(rawCookie)
	if !ok {
		return Resolution{}, apperror.New(apperror.CodeAuthRequired, "authentication required")
	}

	if !sess.Token.ExpiredAt(g.now(), ExpirySkew) {
		return Resolution{Session: sess}, nil
	}

	if !sess.HasRefreshToken() {
		return Resolution{}, apperror.New(apperror.CodeTokenExpired, "access token expired")
	}

	token, err := g.provider.Refresh(ctx, sess.Token.RefreshToken)
	if err != nil {
		return Resolution{}, fmt.Errorf("refresh access token: %w", err)
	}

	return Resolution{Session: sess.WithRefreshedToken(token), Refreshed: true}, nil
}
