package usecase

import (
	"context"

	userdomain "vidtube-backend/internal/user/domain"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
)

// MediaUploader pushes a local temp file to the hosted media store and
// returns its durable URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// UserFinder resolves channel usernames. Implemented by the user repository.
type UserFinder interface {
	FindByUsername(username string) (*userdomain.User, error)
}

type VideoUsecase interface {
	Publish(ownerID string, req *videodto.PublishRequest, videoPath, thumbnailPath string) (*videodomain.Video, error)
	// Get fetches a published video, counts the view and records it in the
	// viewer's watch history.
	Get(viewerID, videoID string) (*videodomain.Video, error)
	ListByChannel(username string) ([]videodomain.Video, error)
	WatchHistory(userID string) ([]videodto.WatchHistoryItem, error)
}
