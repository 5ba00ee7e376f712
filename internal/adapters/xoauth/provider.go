// Package xoauth implements the OAuth2 Authorization-Code-with-PKCE wire
// contract against the X token and identity endpoints.
package xoauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/hitx/ui-api/internal/apperror"
	domainauth "github.com/hitx/ui-api/internal/domain/auth"
)

// Provider talks to the provider's OAuth2 endpoints. It is stateless and
// safe for concurrent use.
type Provider struct {
	oauth      *oauth2.Config
	clientID   string
	secret     string
	tokenURL   string
	apiBaseURL string
	scope      string
	httpClient *http.Client
	now        func() time.Time
}

// ProviderConfig holds configuration for the OAuth provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AuthorizeURL string
	TokenURL     string
	APIBaseURL   string
	Scope        string
	HTTPClient   *http.Client // Optional, defaults to http.DefaultClient
	Now          func() time.Time
}

// NewProvider creates a new Provider.
func NewProvider(cfg ProviderConfig) *Provider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.CallbackURL,
			Scopes:      strings.Fields(cfg.Scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizeURL,
				TokenURL: cfg.TokenURL,
			},
		},
		clientID:   cfg.ClientID,
		secret:     cfg.ClientSecret,
		tokenURL:   cfg.TokenURL,
		apiBaseURL: cfg.APIBaseURL,
		scope:      cfg.Scope,
		httpClient: httpClient,
		now:        now,
	}
}

// AuthorizeURL builds the provider authorization URL with the S256 PKCE
// parameters. Construction is deterministic for a given state/challenge.
func (p *Provider) AuthorizeURL(state, codeChallenge string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// tokenResponse is the provider token endpoint success body.
type tokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
}

// mapToken validates a token response and computes the absolute expiry as
// wall-clock-now plus the reported lifetime. The 60s consumption-time skew
// (see service.SessionGuard) compensates for the round trip this ignores.
func (p *Provider) mapToken(tok tokenResponse) (domainauth.OAuthToken, error) {
	if tok.AccessToken == "" || tok.ExpiresIn == 0 || tok.TokenType == "" {
		return domainauth.OAuthToken{}, apperror.New(apperror.CodeUpstreamFailure, "invalid token response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(fmt.Errorf("token_type=%q expires_in=%d access_token_present=%t",
				tok.TokenType, tok.ExpiresIn, tok.AccessToken != ""))
	}
	scope := tok.Scope
	if scope == "" {
		scope = p.scope
	}
	return domainauth.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Scope:        scope,
		ExpiresAt:    p.now().UnixMilli() + tok.ExpiresIn*1000,
	}, nil
}

// postTokenEndpoint performs a form-encoded POST authenticated via HTTP
// Basic with the client credentials and returns the raw response.
func (p *Provider) postTokenEndpoint(ctx context.Context, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.clientID, p.secret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperror.New(apperror.CodeUpstreamFailure, "X token endpoint unreachable").WithCause(err)
	}
	return resp, nil
}

func readBody(resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}

// Exchange trades an authorization code and PKCE verifier for a token set.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (domainauth.OAuthToken, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {p.oauth.RedirectURL},
		"client_id":     {p.clientID},
		"code_verifier": {codeVerifier},
	}

	resp, err := p.postTokenEndpoint(ctx, form)
	if err != nil {
		return domainauth.OAuthToken{}, err
	}
	body := readBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainauth.OAuthToken{}, apperror.New(apperror.CodeUpstreamFailure,
			fmt.Sprintf("X token exchange failed with status %d", resp.StatusCode)).
			WithStatus(resp.StatusCode).
			WithCause(fmt.Errorf("token endpoint response: %s", body))
	}

	var tok tokenResponse
	if err := json.Unmarshal([]byte(body), &tok); err != nil {
		return domainauth.OAuthToken{}, apperror.New(apperror.CodeUpstreamFailure, "invalid token response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(err)
	}
	return p.mapToken(tok)
}

// Refresh trades a refresh token for a new token set. The provider may omit
// the refresh token in the response; preserving the prior one is the
// caller's responsibility (auth.Session.WithRefreshedToken).
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (domainauth.OAuthToken, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {p.clientID},
	}

	resp, err := p.postTokenEndpoint(ctx, form)
	if err != nil {
		return domainauth.OAuthToken{}, err
	}
	body := readBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 400/401 means the refresh token is no longer honored: force
		// re-login rather than retry.
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return domainauth.OAuthToken{}, apperror.New(apperror.CodeTokenRevoked,
				fmt.Sprintf("X refresh token rejected with status %d", resp.StatusCode)).
				WithCause(fmt.Errorf("token endpoint response: %s", body))
		}
		return domainauth.OAuthToken{}, apperror.New(apperror.CodeUpstreamFailure,
			fmt.Sprintf("X token refresh failed with status %d", resp.StatusCode)).
			WithStatus(resp.StatusCode).
			WithCause(fmt.Errorf("token endpoint response: %s", body))
	}

	var tok tokenResponse
	if err := json.Unmarshal([]byte(body), &tok); err != nil {
		return domainauth.OAuthToken{}, apperror.New(apperror.CodeUpstreamFailure, "invalid token response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(err)
	}
	return p.mapToken(tok)
}

// identityResponse is the /users/me success body.
type identityResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

// Identity fetches the authenticated account behind an access token.
func (p *Provider) Identity(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	endpoint := p.apiBaseURL + "/users/me?user.fields=profile_image_url,description"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Identity{}, apperror.New(apperror.CodeUpstreamFailure, "X identity endpoint unreachable").WithCause(err)
	}
	body := readBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainauth.Identity{}, apperror.New(apperror.CodeUpstreamFailure,
			fmt.Sprintf("X user lookup failed with status %d", resp.StatusCode)).
			WithStatus(resp.StatusCode).
			WithCause(fmt.Errorf("identity endpoint response: %s", body))
	}

	var parsed identityResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return domainauth.Identity{}, apperror.New(apperror.CodeUpstreamFailure, "invalid identity response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(err)
	}
	if parsed.Data.ID == "" {
		return domainauth.Identity{}, apperror.New(apperror.CodeUpstreamFailure, "missing user data from X /users/me").
			WithStatus(http.StatusBadGateway)
	}
	return domainauth.Identity{
		ID:       parsed.Data.ID,
		Name:     parsed.Data.Name,
		Username: parsed.Data.Username,
	}, nil
}
