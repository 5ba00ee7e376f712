package model

// Profile is a read-only projection of the authenticated X account.
// Fetched fresh per request; never cached or persisted.
type Profile struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Description     string `json:"description,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}
