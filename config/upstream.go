package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// XConfig contains the OAuth client credentials and upstream X API endpoints.
// All fields are read with the X_ prefix (e.g. CLIENT_ID -> X_CLIENT_ID).
type XConfig struct {
	// ClientID is the OAuth2 client identifier issued by X.
	ClientID string `env:"CLIENT_ID,required"`

	// ClientSecret authenticates the token endpoint via HTTP Basic.
	ClientSecret string `env:"CLIENT_SECRET,required"`

	// CallbackURL is the registered OAuth redirect URI.
	// It must be a subpath of APP_URL.
	CallbackURL string `env:"OAUTH_CALLBACK_URL,required"`

	// AuthorizeURL is the provider's authorization endpoint.
	AuthorizeURL string `env:"OAUTH_AUTHORIZE_URL" envDefault:"https://twitter.com/i/oauth2/authorize"`

	// TokenURL is the provider's OAuth2 token endpoint.
	TokenURL string `env:"OAUTH_TOKEN_URL" envDefault:"https://api.x.com/2/oauth2/token"`

	// APIBaseURL is the base URL for the X v2 resource API.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://api.x.com/2"`

	// Scope is the space-separated OAuth scope string requested at login.
	Scope string `env:"OAUTH_SCOPE" envDefault:"tweet.read users.read like.read list.read follows.read offline.access"`

	// PostsMaxResults is the default page size for post fetches.
	// Clamped into [5,100] at request time regardless of this value.
	PostsMaxResults int `env:"POSTS_MAX_RESULTS" envDefault:"50"`

	// HTTPTimeout bounds each upstream HTTP call.
	// Zero leaves the transport default in place.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT"`
}

// Sanitize applies guardrails to upstream configuration values.
func (x *XConfig) Sanitize() {
	x.CallbackURL = strings.TrimSuffix(strings.TrimSpace(x.CallbackURL), "/")
	x.AuthorizeURL = strings.TrimSuffix(strings.TrimSpace(x.AuthorizeURL), "/")
	x.TokenURL = strings.TrimSuffix(strings.TrimSpace(x.TokenURL), "/")
	x.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(x.APIBaseURL), "/")
	if x.HTTPTimeout < 0 {
		x.HTTPTimeout = 0
	}
}

// Validate checks endpoint URLs and cross-field constraints.
// baseURL is the sanitized application base URL (HTTPConfig.BaseURL).
func (x *XConfig) Validate(baseURL string) error {
	for key, value := range map[string]string{
		"X_OAUTH_CALLBACK_URL":  x.CallbackURL,
		"X_OAUTH_AUTHORIZE_URL": x.AuthorizeURL,
		"X_OAUTH_TOKEN_URL":     x.TokenURL,
		"X_API_BASE_URL":        x.APIBaseURL,
	} {
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("%s must be a valid absolute URL, got %q", key, value)
		}
	}

	if !strings.HasPrefix(x.CallbackURL, baseURL) {
		return fmt.Errorf("X_OAUTH_CALLBACK_URL must be under APP_URL (%q), got %q", baseURL, x.CallbackURL)
	}

	if x.PostsMaxResults <= 0 {
		return fmt.Errorf("X_POSTS_MAX_RESULTS must be a positive integer, got %d", x.PostsMaxResults)
	}

	return nil
}
