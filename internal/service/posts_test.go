package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hitx/ui-api/internal/domain/model"
	"github.com/hitx/ui-api/internal/mocks"
	"github.com/hitx/ui-api/internal/ports"
)

func TestPostsService_FetchTimeline(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockPostsAPI(ctrl)

	profile := model.Profile{ID: "99", Name: "Test User", Username: "testuser"}
	posts := []model.Post{{ID: "111", Text: "hello"}}

	gomock.InOrder(
		api.EXPECT().FetchProfile(gomock.Any(), "access").Return(profile, nil),
		api.EXPECT().FetchPosts(gomock.Any(), ports.PostsQuery{
			AccessToken: "access",
			UserID:      "99",
			Username:    "testuser",
			MaxResults:  25,
		}).Return(posts, nil),
	)

	svc := NewPostsService(PostsServiceOptions{API: api})
	result, err := svc.FetchTimeline(context.Background(), TimelineInput{
		AccessToken: "access",
		UserID:      "99",
		MaxResults:  25,
	})
	require.NoError(t, err)
	assert.Equal(t, profile, result.Profile)
	assert.Equal(t, posts, result.Posts)
}

func TestPostsService_ProfileFailureAbortsFetch(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockPostsAPI(ctrl)

	// No FetchPosts expectation: a profile failure must short-circuit.
	api.EXPECT().FetchProfile(gomock.Any(), "access").Return(model.Profile{}, assert.AnError)

	svc := NewPostsService(PostsServiceOptions{API: api})
	_, err := svc.FetchTimeline(context.Background(), TimelineInput{AccessToken: "access", UserID: "99"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPostsService_PostsFailurePropagates(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockPostsAPI(ctrl)

	api.EXPECT().FetchProfile(gomock.Any(), "access").Return(model.Profile{ID: "99", Username: "testuser"}, nil)
	api.EXPECT().FetchPosts(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	svc := NewPostsService(PostsServiceOptions{API: api})
	_, err := svc.FetchTimeline(context.Background(), TimelineInput{AccessToken: "access", UserID: "99"})
	assert.ErrorIs(t, err, assert.AnError)
}
