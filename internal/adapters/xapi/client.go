// Package xapi fetches profile and post projections from the X v2 resource
// API and maps heterogeneous remote failures into the apperror taxonomy.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hitx/ui-api/internal/apperror"
	"github.com/hitx/ui-api/internal/domain/model"
	"github.com/hitx/ui-api/internal/ports"
)

const (
	rateLimitResetHeader = "x-rate-limit-reset"

	minPageSize = 5
	maxPageSize = 100
)

// Client talks to the X v2 resource API. Stateless; safe for concurrent use.
type Client struct {
	baseURL        string
	defaultResults int
	httpClient     *http.Client
}

// ClientConfig holds configuration for the resource client.
type ClientConfig struct {
	BaseURL string
	// DefaultMaxResults is used when a query does not specify a page size.
	DefaultMaxResults int
	HTTPClient        *http.Client // Optional, defaults to http.DefaultClient
}

// NewClient creates a new Client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	defaultResults := cfg.DefaultMaxResults
	if defaultResults == 0 {
		defaultResults = 50
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		defaultResults: defaultResults,
		httpClient:     httpClient,
	}
}

// clampMaxResults forces a page size into the API's inclusive [5,100] range.
func clampMaxResults(n int) int {
	if n < minPageSize {
		return minPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

// parseRateLimitReset converts the reset header (epoch seconds) to epoch
// milliseconds. Absent or unparseable yields zero, never an error.
func parseRateLimitReset(resp *http.Response) int64 {
	raw := resp.Header.Get(rateLimitResetHeader)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return parsed * 1000
}

// classifyStatus maps a non-2xx response into the taxonomy. Shared by all
// resource fetches.
func classifyStatus(resp *http.Response, body string) *apperror.Error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		appErr := apperror.New(apperror.CodeRateLimited, "X API rate limit reached, retry shortly").
			WithCause(fmt.Errorf("rate limited response: %s", body))
		if resetAt := parseRateLimitReset(resp); resetAt > 0 {
			appErr = appErr.WithResetAt(resetAt)
		}
		return appErr
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperror.New(apperror.CodeTokenRevoked, "X authorization is invalid or revoked").
			WithCause(fmt.Errorf("status %d response: %s", resp.StatusCode, body))
	default:
		return apperror.New(apperror.CodeUpstreamFailure,
			fmt.Sprintf("X API request failed with status %d", resp.StatusCode)).
			WithStatus(resp.StatusCode).
			WithCause(fmt.Errorf("response: %s", body))
	}
}

// apiError is a provider-level error entry carried inside a response body.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// errorFromPayload escalates a 2xx body that carries a provider-level error
// array. HTTP success does not guarantee application success for this API.
func errorFromPayload(errs []apiError) *apperror.Error {
	if len(errs) == 0 {
		return nil
	}
	message := ""
	for _, entry := range errs {
		part := entry.Detail
		if part == "" {
			part = entry.Title
		}
		if part == "" {
			continue
		}
		if message != "" {
			message += "; "
		}
		message += part
	}
	if message == "" {
		message = "X API returned an error payload"
	}
	return apperror.New(apperror.CodeUpstreamFailure, message).WithStatus(http.StatusBadGateway)
}

// get performs a bearer-authenticated GET and returns the body of a 2xx
// response, or a classified taxonomy error.
func (c *Client) get(ctx context.Context, endpoint, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.New(apperror.CodeUpstreamFailure, "X API unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.New(apperror.CodeUpstreamFailure, "read X API response").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp, string(body))
	}
	return body, nil
}

type userResponse struct {
	Data   *apiUser   `json:"data"`
	Errors []apiError `json:"errors"`
}

// FetchProfile returns the authenticated account's profile.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (model.Profile, error) {
	endpoint := c.baseURL + "/users/me?user.fields=id,name,username,description,profile_image_url"
	body, err := c.get(ctx, endpoint, accessToken)
	if err != nil {
		return model.Profile{}, err
	}

	var payload userResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.Profile{}, apperror.New(apperror.CodeUpstreamFailure, "invalid profile response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(err)
	}
	if appErr := errorFromPayload(payload.Errors); appErr != nil {
		return model.Profile{}, appErr
	}
	if payload.Data == nil || payload.Data.ID == "" || payload.Data.Username == "" {
		return model.Profile{}, apperror.New(apperror.CodeUpstreamFailure, "X profile payload is missing required fields").
			WithStatus(http.StatusBadGateway)
	}
	return mapUserToProfile(*payload.Data), nil
}

type postsResponse struct {
	Data     []apiTweet `json:"data"`
	Includes struct {
		Media []apiMedia `json:"media"`
	} `json:"includes"`
	Errors []apiError `json:"errors"`
}

// FetchPosts returns the user's recent posts, media expansions resolved
// client-side against the response's included media collection.
func (c *Client) FetchPosts(ctx context.Context, q ports.PostsQuery) ([]model.Post, error) {
	maxResults := q.MaxResults
	if maxResults == 0 {
		maxResults = c.defaultResults
	}
	maxResults = clampMaxResults(maxResults)

	query := url.Values{
		"max_results":  {strconv.Itoa(maxResults)},
		"expansions":   {"attachments.media_keys"},
		"tweet.fields": {"id,text,author_id,created_at,entities,public_metrics,attachments"},
		"media.fields": {"media_key,type,url,preview_image_url"},
		"exclude":      {"retweets,replies"},
	}
	endpoint := fmt.Sprintf("%s/users/%s/tweets?%s", c.baseURL, url.PathEscape(q.UserID), query.Encode())

	body, err := c.get(ctx, endpoint, q.AccessToken)
	if err != nil {
		return nil, err
	}

	var payload postsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperror.New(apperror.CodeUpstreamFailure, "invalid posts response from X").
			WithStatus(http.StatusBadGateway).
			WithCause(err)
	}
	if appErr := errorFromPayload(payload.Errors); appErr != nil {
		return nil, appErr
	}
	if len(payload.Data) == 0 {
		return []model.Post{}, nil
	}

	mediaByKey := make(map[string]apiMedia, len(payload.Includes.Media))
	for _, item := range payload.Includes.Media {
		mediaByKey[item.MediaKey] = item
	}

	posts := make([]model.Post, 0, len(payload.Data))
	for _, tweet := range payload.Data {
		posts = append(posts, mapTweetToPost(tweet, mediaByKey, q.Username))
	}
	return posts, nil
}
