package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/hitx/ui-api/internal/cryptoutil"
	domainauth "github.com/hitx/ui-api/internal/domain/auth"
	"github.com/hitx/ui-api/internal/ports"
)

// ErrInvalidState signals that the callback state did not match the value
// stored at login initiation, or that the transient login state was missing
// or expired. The caller must restart the flow; no exchange is attempted.
var ErrInvalidState = errors.New("oauth state mismatch")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.TokenProvider
}

// AuthService orchestrates the OAuth login flow: PKCE material generation,
// state verification, the code exchange, and the identity lookup that seeds
// the session.
type AuthService struct {
	provider ports.TokenProvider
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{provider: opts.Provider}
}

// BeginLoginResult contains the result of beginning a login flow. State and
// CodeVerifier must round-trip to the callback via the transient cookie.
type BeginLoginResult struct {
	AuthorizeURL string
	State        string
	CodeVerifier string
}

// BeginLogin generates fresh state and PKCE material and builds the
// provider authorization URL. Every call produces new random values.
func (s *AuthService) BeginLogin() (*BeginLoginResult, error) {
	state, err := cryptoutil.OAuthState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier, err := cryptoutil.PKCEVerifier()
	if err != nil {
		return nil, fmt.Errorf("generate code verifier: %w", err)
	}
	challenge := cryptoutil.PKCEChallenge(verifier)

	return &BeginLoginResult{
		AuthorizeURL: s.provider.AuthorizeURL(state, challenge),
		State:        state,
		CodeVerifier: verifier,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
// Transient carries the state and code verifier recovered from the
// transient cookie.
type CompleteLoginInput struct {
	Code      string
	State     string
	Transient domainauth.Transient
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin verifies the callback state against the stored transient
// value, exchanges the authorization code for a token set, and resolves the
// authenticated identity. State must match exactly before any network call
// is made.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" || input.Transient.State == "" {
		return nil, ErrInvalidState
	}
	if subtle.ConstantTimeCompare([]byte(input.State), []byte(input.Transient.State)) != 1 {
		return nil, ErrInvalidState
	}

	token, err := s.provider.Exchange(ctx, input.Code, input.Transient.CodeVerifier)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	identity, err := s.provider.Identity(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	return &CompleteLoginResult{
		Session: domainauth.Session{UserID: identity.ID, Token: token},
	}, nil
}
