package bootstrap

import (
	"net/http"

	"github.com/hitx/ui-api/config"
	"github.com/hitx/ui-api/internal/adapters/xapi"
	"github.com/hitx/ui-api/internal/adapters/xoauth"
	"github.com/hitx/ui-api/internal/service"
	"github.com/hitx/ui-api/internal/session"
)

// ServiceContainer holds the wired application services and the cookie
// codec they share.
type ServiceContainer struct {
	Codec *session.Codec
	Auth  *service.AuthService
	Guard *service.SessionGuard
	Posts *service.PostsService
}

// NewServices wires adapters and services from configuration. One HTTP
// client is shared by both upstream adapters so the timeout applies
// uniformly.
func NewServices(cfg config.AppConfig) ServiceContainer {
	httpClient := &http.Client{Timeout: cfg.X.HTTPTimeout}

	codec := session.NewCodec(session.CodecOptions{
		Secret:       cfg.Session.Secret,
		Secure:       !cfg.IsDev,
		CookieDomain: cfg.HTTP.CookieDomain,
	})

	provider := xoauth.NewProvider(xoauth.ProviderConfig{
		ClientID:     cfg.X.ClientID,
		ClientSecret: cfg.X.ClientSecret,
		CallbackURL:  cfg.X.CallbackURL,
		AuthorizeURL: cfg.X.AuthorizeURL,
		TokenURL:     cfg.X.TokenURL,
		APIBaseURL:   cfg.X.APIBaseURL,
		Scope:        cfg.X.Scope,
		HTTPClient:   httpClient,
	})

	api := xapi.NewClient(xapi.ClientConfig{
		BaseURL:           cfg.X.APIBaseURL,
		DefaultMaxResults: cfg.X.PostsMaxResults,
		HTTPClient:        httpClient,
	})

	return ServiceContainer{
		Codec: codec,
		Auth:  service.NewAuthService(service.AuthServiceOptions{Provider: provider}),
		Guard: service.NewSessionGuard(service.SessionGuardOptions{Codec: codec, Provider: provider}),
		Posts: service.NewPostsService(service.PostsServiceOptions{API: api}),
	}
}
