package domain

import "time"

type Video struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	OwnerID      string    `json:"ownerId" gorm:"index"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnail"`
	DurationSec  float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WatchEntry is one row of a user's watch history. A user has at most one
// entry per video; re-watching moves the entry to the front.
type WatchEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"index;uniqueIndex:idx_user_video"`
	VideoID   string    `json:"videoId" gorm:"uniqueIndex:idx_user_video"`
	WatchedAt time.Time `json:"watchedAt"`
}
