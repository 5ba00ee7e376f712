package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hitx/ui-api/internal/apperror"
	"github.com/hitx/ui-api/internal/service"
	"github.com/hitx/ui-api/internal/session"
)

// Failure reasons surfaced to the frontend via the auth=failed redirect.
// A provider-reported error passes through as-is.
const (
	reasonInvalidState  = "invalid_state"
	reasonRevoked       = "revoked"
	reasonRateLimited   = "rate_limited"
	reasonTokenExchange = "token_exchange"
)

// AuthHandlers serves the browser-facing OAuth login, callback, disconnect,
// and status endpoints.
type AuthHandlers struct {
	Auth    *service.AuthService
	Codec   *session.Codec
	BaseURL string
	Logger  *slog.Logger
}

// handleLogin starts the OAuth flow: it stores state and PKCE verifier in
// the transient cookie and redirects the browser to the provider.
func (h *AuthHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	result, err := h.Auth.BeginLogin()
	if err != nil {
		h.Logger.Error("begin login", slog.Any("error", err))
		WriteError(w, err)
		return
	}

	cookie, err := h.Codec.TransientCookie(result.State, result.CodeVerifier)
	if err != nil {
		h.Logger.Error("encode transient cookie", slog.Any("error", err))
		WriteError(w, err)
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, result.AuthorizeURL, http.StatusFound)
}

// handleCallback finishes the OAuth flow. Whatever the outcome, the browser
// ends up back at the app root with an auth query parameter describing it;
// the transient cookie is consumed either way.
func (h *AuthHandlers) handleCallback(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Codec.ClearTransientCookie())

	query := r.URL.Query()
	if providerErr := query.Get("error"); providerErr != "" {
		h.Logger.Warn("provider denied authorization", slog.String("error", providerErr))
		h.redirectFailed(w, r, providerErr)
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.redirectFailed(w, r, reasonInvalidState)
		return
	}

	transient, ok := h.Codec.ReadTransient(r)
	if !ok {
		h.redirectFailed(w, r, reasonInvalidState)
		return
	}

	result, err := h.Auth.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:      code,
		State:     state,
		Transient: transient,
	})
	if err != nil {
		h.Logger.Warn("complete login", slog.Any("error", err))
		if !errors.Is(err, service.ErrInvalidState) {
			// A failed exchange leaves no session worth keeping.
			http.SetCookie(w, h.Codec.ClearSessionCookie())
		}
		h.redirectFailed(w, r, failureReason(err))
		return
	}

	cookie, err := h.Codec.SessionCookie(result.Session)
	if err != nil {
		h.Logger.Error("encode session cookie", slog.Any("error", err))
		h.redirectFailed(w, r, reasonTokenExchange)
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, h.BaseURL+"/?auth=connected", http.StatusFound)
}

func failureReason(err error) string {
	if errors.Is(err, service.ErrInvalidState) {
		return reasonInvalidState
	}
	switch apperror.CodeOf(err) {
	case apperror.CodeTokenRevoked:
		return reasonRevoked
	case apperror.CodeRateLimited:
		return reasonRateLimited
	default:
		return reasonTokenExchange
	}
}

func (h *AuthHandlers) redirectFailed(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, h.BaseURL+"/?auth=failed&reason="+url.QueryEscape(reason), http.StatusFound)
}

// handleDisconnect drops the session. There is nothing to revoke server-side
// because the cookie is the only session storage.
func (h *AuthHandlers) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Codec.ClearSessionCookie())
	http.SetCookie(w, h.Codec.ClearTransientCookie())

	if r.Method == http.MethodPost {
		WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	http.Redirect(w, r, h.BaseURL+"/?auth=disconnected", http.StatusSeeOther)
}

// handleStatus reports whether the browser holds a usable session, judged
// from the cookie alone: no upstream call is made, so a connected answer
// means either a live access token or a refreshable one.
func (h *AuthHandlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Codec.ReadSession(r)
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"connected": false})
		return
	}

	if sess.Token.ExpiredAt(time.Now(), service.ExpirySkew) && !sess.HasRefreshToken() {
		WriteJSON(w, http.StatusOK, map[string]any{"connected": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"connected": true,
		"userId":    sess.UserID,
	})
}

// rawSessionCookie returns the session cookie value, or empty when absent.
func rawSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(session.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
