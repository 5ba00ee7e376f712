package xapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitx/ui-api/internal/apperror"
	"github.com/hitx/ui-api/internal/ports"
)

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL, DefaultMaxResults: 50})
}

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status       int
		expectedCode apperror.Code
		expectedHTTP int
	}{
		{http.StatusTooManyRequests, apperror.CodeRateLimited, http.StatusTooManyRequests},
		{http.StatusUnauthorized, apperror.CodeTokenRevoked, http.StatusUnauthorized},
		{http.StatusForbidden, apperror.CodeTokenRevoked, http.StatusUnauthorized},
		{http.StatusInternalServerError, apperror.CodeUpstreamFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := newTestClient(server.URL)
		_, err := client.FetchProfile(context.Background(), "token")
		server.Close()
		require.Error(t, err, "status %d", tt.status)

		appErr := apperror.From(err)
		assert.Equal(t, tt.expectedCode, appErr.Code, "status %d", tt.status)
		assert.Equal(t, tt.expectedHTTP, appErr.Status, "status %d", tt.status)
	}
}

func TestClient_RateLimitResetHeader(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-rate-limit-reset", "1700000000")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProfile(context.Background(), "token")
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeRateLimited, appErr.Code)
	assert.Equal(t, int64(1_700_000_000_000), appErr.ResetAt)
}

func TestClient_RateLimitResetHeaderUnparseable(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-rate-limit-reset", "soon")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProfile(context.Background(), "token")
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeRateLimited, appErr.Code)
	assert.Zero(t, appErr.ResetAt)
}

func TestClient_FetchPosts_MaxResultsClamping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		requested int
		expected  string
	}{
		{0, "50"}, // zero selects the configured default
		{3, "5"},
		{500, "100"},
		{42, "42"},
	}

	for _, tt := range tests {
		var gotMaxResults string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMaxResults = r.URL.Query().Get("max_results")
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))

		client := newTestClient(server.URL)
		_, err := client.FetchPosts(context.Background(), ports.PostsQuery{
			AccessToken: "token",
			UserID:      "99",
			Username:    "testuser",
			MaxResults:  tt.requested,
		})
		server.Close()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, gotMaxResults, "requested %d", tt.requested)
	}
}

func TestClient_FetchPosts_DefaultAboveRangeClamps(t *testing.T) {
	t.Parallel()
	var gotMaxResults string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMaxResults = r.URL.Query().Get("max_results")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, DefaultMaxResults: 400})
	_, err := client.FetchPosts(context.Background(), ports.PostsQuery{AccessToken: "t", UserID: "1", Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, "100", gotMaxResults)
}

func TestClient_FetchPosts_EmptyResult(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"result_count":0}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	posts, err := client.FetchPosts(context.Background(), ports.PostsQuery{AccessToken: "t", UserID: "1", Username: "u"})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NotNil(t, posts)
}

func TestClient_FetchPosts_MediaJoin(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/99/tweets", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "attachments.media_keys", r.URL.Query().Get("expansions"))
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"id": "111",
					"text": "hello #golang @friend",
					"author_id": "99",
					"created_at": "2024-01-15T10:00:00.000Z",
					"entities": {
						"hashtags": [{"tag": "golang"}],
						"mentions": [{"username": "friend"}]
					},
					"public_metrics": {"like_count": 7, "retweet_count": 2, "reply_count": 1, "impression_count": 120},
					"attachments": {"media_keys": ["m-1", "m-missing"]}
				},
				{
					"id": "222",
					"text": "plain post",
					"author_id": "99",
					"created_at": "2024-01-14T10:00:00.000Z"
				}
			],
			"includes": {
				"media": [
					{"media_key": "m-1", "type": "photo", "url": "https://img.example/m1.jpg"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	posts, err := client.FetchPosts(context.Background(), ports.PostsQuery{
		AccessToken: "token",
		UserID:      "99",
		Username:    "testuser",
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, "111", first.ID)
	assert.Equal(t, "https://x.com/testuser/status/111", first.Permalink)
	assert.Equal(t, []string{"golang"}, first.Hashtags)
	assert.Equal(t, []string{"friend"}, first.Mentions)
	// The unresolved media key is dropped, not an error.
	require.Len(t, first.Media, 1)
	assert.Equal(t, "m-1", first.Media[0].MediaKey)
	assert.Equal(t, 7, first.Metrics.LikeCount)
	require.NotNil(t, first.Metrics.ViewCount)
	assert.Equal(t, 120, *first.Metrics.ViewCount)

	second := posts[1]
	assert.Empty(t, second.Media)
	assert.Nil(t, second.Metrics.ViewCount)
}

func TestClient_ErrorPayloadInsideSuccess(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 carrying a provider-level error array.
		_, _ = w.Write([]byte(`{"errors":[{"title":"Forbidden","detail":"not authorized for field"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProfile(context.Background(), "token")
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeUpstreamFailure, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Contains(t, appErr.Message, "not authorized for field")
}

func TestClient_FetchProfile_MissingRequiredFields(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":"99","name":"No Username"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProfile(context.Background(), "token")
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.CodeUpstreamFailure, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestClient_FetchProfile_Success(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":"99","name":"Test User","username":"testuser","description":"bio","profile_image_url":"https://img.example/a.jpg"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	profile, err := client.FetchProfile(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "99", profile.ID)
	assert.Equal(t, "testuser", profile.Username)
	assert.Equal(t, "bio", profile.Description)
}
