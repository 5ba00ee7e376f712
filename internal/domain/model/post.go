package model

// MediaType enumerates the media kinds the X API attaches to posts.
type MediaType string

const (
	MediaTypePhoto       MediaType = "photo"
	MediaTypeVideo       MediaType = "video"
	MediaTypeAnimatedGif MediaType = "animated_gif"
)

// PostMedia is a media attachment resolved from the response's included
// media collection. URL and PreviewImageURL are optional; videos usually
// carry only a preview image.
type PostMedia struct {
	MediaKey        string    `json:"mediaKey"`
	Type            MediaType `json:"type"`
	URL             string    `json:"url,omitempty"`
	PreviewImageURL string    `json:"previewImageUrl,omitempty"`
}

// PostMetrics are the public engagement counters for a post. ViewCount is
// a pointer because the provider omits impression counts on some tiers.
type PostMetrics struct {
	LikeCount   int  `json:"likeCount"`
	RepostCount int  `json:"repostCount"`
	ReplyCount  int  `json:"replyCount"`
	ViewCount   *int `json:"viewCount,omitempty"`
}

// Post is a read-only projection of a provider post. It carries no local
// identity beyond the provider's own IDs and is never persisted.
type Post struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	AuthorID  string      `json:"authorId"`
	CreatedAt string      `json:"createdAt"`
	Permalink string      `json:"permalink"`
	Hashtags  []string    `json:"hashtags"`
	Mentions  []string    `json:"mentions"`
	Media     []PostMedia `json:"media"`
	Metrics   PostMetrics `json:"metrics"`
}
