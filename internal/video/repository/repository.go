package repository

import (
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
)

// VideoRepository is the persistence boundary for videos and watch history.
// Lookups return (nil, nil) when no record matches.
type VideoRepository interface {
	Create(video *videodomain.Video) error
	FindByID(id string) (*videodomain.Video, error)
	ListByOwner(ownerID string) ([]videodomain.Video, error)
	IncrementViews(id string) error

	// RecordWatch upserts the viewer's history entry for the video so the
	// history stays de-duplicated and ordered by last watch.
	RecordWatch(userID, videoID string) error
	WatchHistory(userID string) ([]videodto.WatchHistoryItem, error)
}
