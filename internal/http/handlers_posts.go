package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hitx/ui-api/internal/apperror"
	"github.com/hitx/ui-api/internal/domain/model"
	"github.com/hitx/ui-api/internal/service"
	"github.com/hitx/ui-api/internal/session"
)

// Timeline envelope statuses.
const (
	statusReady        = "ready"
	statusEmpty        = "empty"
	statusNotConnected = "not_connected"
	statusError        = "error"
)

// timelineResponse is the envelope for GET /api/posts. Status is always set;
// the other fields are populated per status.
type timelineResponse struct {
	Status  string         `json:"status"`
	Profile *model.Profile `json:"profile,omitempty"`
	Posts   []model.Post   `json:"posts,omitempty"`
	Error   *ErrorBody     `json:"error,omitempty"`
}

// PostsHandlers serves the authenticated timeline endpoint.
type PostsHandlers struct {
	Guard  *service.SessionGuard
	Posts  *service.PostsService
	Codec  *session.Codec
	Logger *slog.Logger
}

// handleTimeline resolves the session, refreshing the token when needed, and
// returns the profile plus recent posts. Auth-shaped failures render as
// not_connected with a 401 so the UI shows the connect button.
func (h *PostsHandlers) handleTimeline(w http.ResponseWriter, r *http.Request) {
	res, err := h.Guard.Resolve(r.Context(), rawSessionCookie(r))
	if err != nil {
		h.writeTimelineError(w, err)
		return
	}
	if res.Refreshed {
		if cookie, cookieErr := h.Codec.SessionCookie(res.Session); cookieErr == nil {
			http.SetCookie(w, cookie)
		}
	}

	maxResults := 0
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			maxResults = parsed
		}
	}

	result, err := h.Posts.FetchTimeline(r.Context(), service.TimelineInput{
		AccessToken: res.Session.Token.AccessToken,
		UserID:      res.Session.UserID,
		MaxResults:  maxResults,
	})
	if err != nil {
		h.writeTimelineError(w, err)
		return
	}

	status := statusReady
	if len(result.Posts) == 0 {
		status = statusEmpty
	}
	WriteJSON(w, http.StatusOK, timelineResponse{
		Status:  status,
		Profile: &result.Profile,
		Posts:   result.Posts,
	})
}

// writeTimelineError maps classified failures onto the envelope. Auth-shaped
// failures answer 401 as not_connected and clear the session cookie so the
// next request starts clean; an expired session reads the same as no
// session to the frontend, so it is reported as AUTH_REQUIRED.
func (h *PostsHandlers) writeTimelineError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	switch appErr.Code {
	case apperror.CodeAuthRequired, apperror.CodeTokenExpired:
		http.SetCookie(w, h.Codec.ClearSessionCookie())
		body := ErrorBody{Code: string(apperror.CodeAuthRequired), Message: "authentication required"}
		WriteJSON(w, http.StatusUnauthorized, timelineResponse{Status: statusNotConnected, Error: &body})
	case apperror.CodeTokenRevoked:
		http.SetCookie(w, h.Codec.ClearSessionCookie())
		body := errorBodyFrom(appErr)
		WriteJSON(w, http.StatusUnauthorized, timelineResponse{Status: statusNotConnected, Error: &body})
	default:
		h.Logger.Error("fetch timeline", slog.Any("error", err))
		body := errorBodyFrom(appErr)
		WriteJSON(w, appErr.Status, timelineResponse{Status: statusError, Error: &body})
	}
}
