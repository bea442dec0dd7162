package domain

type Provider string

const (
	ProviderYouTube Provider = "youtube"
)

// MediaRef identifies a playable item at its provider.
type MediaRef struct {
	Id        string   `json:"id"`
	Title     string   `json:"title"`
	Thumbnail *string  `json:"thumbnail,omitempty"`
	Artist    *string  `json:"artist,omitempty"`
	Provider  Provider `json:"provider"`
}

type QueueEntry struct {
	EntryId string `json:"entryId"`
	MediaRef
	AddedBy string `json:"addedBy"`
}
