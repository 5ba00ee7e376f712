package service

import (
	"context"
	"fmt"

	"github.com/hitx/ui-api/internal/domain/model"
	"github.com/hitx/ui-api/internal/ports"
)

// PostsServiceOptions groups dependencies for PostsService.
type PostsServiceOptions struct {
	API ports.PostsAPI
}

// PostsService fetches the authenticated user's profile and recent posts
// from the provider resource API.
type PostsService struct {
	api ports.PostsAPI
}

// NewPostsService constructs a new PostsService.
func NewPostsService(opts PostsServiceOptions) *PostsService {
	return &PostsService{api: opts.API}
}

// TimelineInput groups parameters for a timeline fetch.
type TimelineInput struct {
	AccessToken string
	UserID      string
	// MaxResults is passed through to the API client, which clamps it;
	// zero selects the configured default.
	MaxResults int
}

// TimelineResult is the assembled profile plus posts view.
type TimelineResult struct {
	Profile model.Profile
	Posts   []model.Post
}

// FetchTimeline fetches the profile first, then the posts. The calls run
// sequentially because the posts permalink needs the username from the
// profile; a failure in either call aborts the whole fetch.
func (s *PostsService) FetchTimeline(ctx context.Context, input TimelineInput) (*TimelineResult, error) {
	profile, err := s.api.FetchProfile(ctx, input.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	posts, err := s.api.FetchPosts(ctx, ports.PostsQuery{
		AccessToken: input.AccessToken,
		UserID:      input.UserID,
		Username:    profile.Username,
		MaxResults:  input.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	return &TimelineResult{Profile: profile, Posts: posts}, nil
}
