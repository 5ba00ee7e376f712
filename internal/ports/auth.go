package ports

// Package ports defines interfaces (hexagonal ports) for auth and upstream
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/hitx/ui-api/internal/domain/auth"
	"github.com/hitx/ui-api/internal/domain/model"
)

// TokenProvider implements the OAuth2 wire contract against the provider:
// authorize URL construction, the code/token exchange, token refresh, and
// the authenticated identity lookup.
type TokenProvider interface {
	// AuthorizeURL builds the provider authorization URL for the given
	// anti-CSRF state and S256 code challenge.
	AuthorizeURL(state, codeChallenge string) string

	// Exchange trades an authorization code plus its PKCE verifier for a
	// token set. Failures surface as apperror values.
	Exchange(ctx context.Context, code, codeVerifier string) (domainauth.OAuthToken, error)

	// Refresh trades a refresh token for a new token set. A 400/401 from
	// the provider means the refresh token is no longer honored and maps
	// to TOKEN_REVOKED; the caller must force re-login, not retry.
	Refresh(ctx context.Context, refreshToken string) (domainauth.OAuthToken, error)

	// Identity fetches the authenticated account for an access token.
	Identity(ctx context.Context, accessToken string) (domainauth.Identity, error)
}

// PostsQuery groups parameters for a post collection fetch.
type PostsQuery struct {
	AccessToken string
	UserID      string
	Username    string
	// MaxResults is clamped into [5,100]; zero selects the configured
	// default.
	MaxResults int
}

// PostsAPI fetches read-only projections from the provider resource API.
type PostsAPI interface {
	// FetchProfile returns the authenticated account's profile.
	FetchProfile(ctx context.Context, accessToken string) (model.Profile, error)

	// FetchPosts returns the user's recent posts with media resolved
	// client-side. An empty result set is an empty slice, not an error.
	FetchPosts(ctx context.Context, q PostsQuery) ([]model.Post, error)
}
