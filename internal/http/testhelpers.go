package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/hitx/ui-api/internal/domain/auth"
	"github.com/hitx/ui-api/internal/ports"
	"github.com/hitx/ui-api/internal/service"
	"github.com/hitx/ui-api/internal/session"
)

const (
	testBaseURL = "http://app.example"
	testSecret  = "httpx-test-secret"
)

var testNow = time.Unix(1_700_000_000, 0)

// testEnv wires real services over mocked ports with a fixed clock, so
// handler tests exercise the full cookie and guard path.
type testEnv struct {
	Codec   *session.Codec
	Handler http.Handler
}

func newTestEnv(t *testing.T, provider ports.TokenProvider, api ports.PostsAPI) *testEnv {
	t.Helper()

	codec := session.NewCodec(session.CodecOptions{
		Secret: testSecret,
		Now:    func() time.Time { return testNow },
	})
	guard := service.NewSessionGuard(service.SessionGuardOptions{
		Codec:    codec,
		Provider: provider,
		Now:      func() time.Time { return testNow },
	})
	handler := NewRouter(RouterServices{
		Auth:    service.NewAuthService(service.AuthServiceOptions{Provider: provider}),
		Guard:   guard,
		Posts:   service.NewPostsService(service.PostsServiceOptions{API: api}),
		Codec:   codec,
		BaseURL: testBaseURL,
		Logger:  slog.New(slog.DiscardHandler),
	})
	return &testEnv{Codec: codec, Handler: handler}
}

func (e *testEnv) do(t *testing.T, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.Handler.ServeHTTP(w, r)
	return w
}

// sessionCookieFor encodes a session into a cookie ready to attach to a
// test request.
func (e *testEnv) sessionCookieFor(t *testing.T, sess domainauth.Session) *http.Cookie {
	t.Helper()
	cookie, err := e.Codec.SessionCookie(sess)
	require.NoError(t, err)
	return cookie
}

// transientCookieFor encodes transient login state into a cookie.
func (e *testEnv) transientCookieFor(t *testing.T, state, verifier string) *http.Cookie {
	t.Helper()
	cookie, err := e.Codec.TransientCookie(state, verifier)
	require.NoError(t, err)
	return cookie
}

// cookieByName finds a Set-Cookie entry in the response, or nil.
func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// validSession returns a session whose token is comfortably unexpired at
// the fixed test clock.
func validSession() domainauth.Session {
	return domainauth.Session{
		UserID: "99",
		Token: domainauth.OAuthToken{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "bearer",
			ExpiresAt:    testNow.Add(time.Hour).UnixMilli(),
		},
	}
}
