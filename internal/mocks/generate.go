// Package mocks provides mock implementations for testing the auth and
// upstream layers.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the port interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	provider := mocks.NewMockTokenProvider(ctrl)
//	provider.EXPECT().Refresh(gomock.Any(), gomock.Any()).Return(token, nil)
package mocks

// Generate mock for TokenProvider interface from internal/ports.
// This creates MockTokenProvider with methods for all TokenProvider
// interface methods: AuthorizeURL, Exchange, Refresh, Identity.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_provider_mock.go github.com/hitx/ui-api/internal/ports TokenProvider

// Generate mock for PostsAPI interface from internal/ports.
// This creates MockPostsAPI with methods for all PostsAPI interface
// methods: FetchProfile, FetchPosts.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=posts_api_mock.go github.com/hitx/ui-api/internal/ports PostsAPI
