package models

import "time"

// PublicDiary is an item of the social feed: someone else's public entry.
type PublicDiary struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorNickname string    `json:"authorNickname"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
}
