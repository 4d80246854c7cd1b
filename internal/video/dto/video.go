package dto

import "time"

type PublishRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description"`
	DurationSec float64 `form:"duration"`
}

// WatchHistoryItem is a watch entry resolved to a video summary with its
// owner at read time.
type WatchHistoryItem struct {
	VideoID        string    `json:"videoId"`
	Title          string    `json:"title"`
	ThumbnailURL   string    `json:"thumbnail"`
	DurationSec    float64   `json:"duration"`
	Views          int64     `json:"views"`
	OwnerUsername  string    `json:"ownerUsername"`
	OwnerAvatarURL string    `json:"ownerAvatar"`
	WatchedAt      time.Time `json:"watchedAt"`
}
