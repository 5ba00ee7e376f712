package httpx

import (
	"log/slog"
	"net/http"

	"github.com/hitx/ui-api/internal/service"
	"github.com/hitx/ui-api/internal/session"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    *service.AuthService
	Guard   *service.SessionGuard
	Posts   *service.PostsService
	Codec   *session.Codec
	BaseURL string
	Logger  *slog.Logger
}

// NewRouter creates and configures the HTTP router with the standard
// middleware chain applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Auth:    services.Auth,
		Codec:   services.Codec,
		BaseURL: services.BaseURL,
		Logger:  logger,
	}
	postsHandlers := &PostsHandlers{
		Guard:  services.Guard,
		Posts:  services.Posts,
		Codec:  services.Codec,
		Logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/x/login", authHandlers.handleLogin)
	mux.HandleFunc("GET /api/auth/x/callback", authHandlers.handleCallback)
	mux.HandleFunc("GET /api/auth/x/disconnect", authHandlers.handleDisconnect)
	mux.HandleFunc("POST /api/auth/x/disconnect", authHandlers.handleDisconnect)
	mux.HandleFunc("GET /api/auth/x/status", authHandlers.handleStatus)
	mux.HandleFunc("GET /api/posts", postsHandlers.handleTimeline)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	var handler http.Handler = mux
	handler = RequestID()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
