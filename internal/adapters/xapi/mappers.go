package xapi

import "github.com/hitx/ui-api/internal/domain/model"

// Wire shapes for the X v2 API. Optional fields are validated at this parse
// boundary; anything required that is missing fails closed upstream of the
// mappers.

type apiUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Description     string `json:"description"`
	ProfileImageURL string `json:"profile_image_url"`
}

type apiTweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
	Entities  struct {
		Hashtags []struct {
			Tag string `json:"tag"`
		} `json:"hashtags"`
		Mentions []struct {
			Username string `json:"username"`
		} `json:"mentions"`
	} `json:"entities"`
	PublicMetrics struct {
		LikeCount       int  `json:"like_count"`
		RetweetCount    int  `json:"retweet_count"`
		ReplyCount      int  `json:"reply_count"`
		ImpressionCount *int `json:"impression_count"`
	} `json:"public_metrics"`
	Attachments struct {
		MediaKeys []string `json:"media_keys"`
	} `json:"attachments"`
}

type apiMedia struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	PreviewImageURL string `json:"preview_image_url"`
}

func mapUserToProfile(user apiUser) model.Profile {
	return model.Profile{
		ID:              user.ID,
		Name:            user.Name,
		Username:        user.Username,
		Description:     user.Description,
		ProfileImageURL: user.ProfileImageURL,
	}
}

func mapMedia(item apiMedia) model.PostMedia {
	return model.PostMedia{
		MediaKey:        item.MediaKey,
		Type:            model.MediaType(item.Type),
		URL:             item.URL,
		PreviewImageURL: item.PreviewImageURL,
	}
}

// mapTweetToPost joins a tweet with its resolved media. Unresolved media
// keys are dropped: a missing media item does not invalidate the post.
func mapTweetToPost(tweet apiTweet, mediaByKey map[string]apiMedia, username string) model.Post {
	hashtags := make([]string, 0, len(tweet.Entities.Hashtags))
	for _, entry := range tweet.Entities.Hashtags {
		hashtags = append(hashtags, entry.Tag)
	}
	mentions := make([]string, 0, len(tweet.Entities.Mentions))
	for _, entry := range tweet.Entities.Mentions {
		mentions = append(mentions, entry.Username)
	}

	media := make([]model.PostMedia, 0, len(tweet.Attachments.MediaKeys))
	for _, key := range tweet.Attachments.MediaKeys {
		if item, ok := mediaByKey[key]; ok {
			media = append(media, mapMedia(item))
		}
	}

	return model.Post{
		ID:        tweet.ID,
		Text:      tweet.Text,
		AuthorID:  tweet.AuthorID,
		CreatedAt: tweet.CreatedAt,
		Permalink: "https://x.com/" + username + "/status/" + tweet.ID,
		Hashtags:  hashtags,
		Mentions:  mentions,
		Media:     media,
		Metrics: model.PostMetrics{
			LikeCount:   tweet.PublicMetrics.LikeCount,
			RepostCount: tweet.PublicMetrics.RetweetCount,
			ReplyCount:  tweet.PublicMetrics.ReplyCount,
			ViewCount:   tweet.PublicMetrics.ImpressionCount,
		},
	}
}
