package usecase

import (
	"context"
	"errors"
	"strings"

	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/internal/video/repository"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/media"

	"github.com/charmbracelet/log"
)

// videoUsecase implements VideoUsecase
type videoUsecase struct {
	videoRepo repository.VideoRepository
	users     UserFinder
	uploader  MediaUploader
}

func NewVideoUsecase(videoRepo repository.VideoRepository, users UserFinder, uploader MediaUploader) VideoUsecase {
	return &videoUsecase{
		videoRepo: videoRepo,
		users:     users,
		uploader:  uploader,
	}
}

func (u *videoUsecase) Publish(ownerID string, req *videodto.PublishRequest, videoPath, thumbnailPath string) (*videodomain.Video, error) {
	videoURL, err := u.uploader.Upload(context.Background(), videoPath)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return nil, apierror.BadRequest("video file is required")
		}
		return nil, apierror.Internal("failed to upload video")
	}

	thumbnailURL, err := u.uploader.Upload(context.Background(), thumbnailPath)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return nil, apierror.BadRequest("thumbnail file is required")
		}
		return nil, apierror.Internal("failed to upload thumbnail")
	}

	video := &videodomain.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		DurationSec:  req.DurationSec,
		IsPublished:  true,
	}

	if err := u.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return video, nil
}

func (u *videoUsecase) Get(viewerID, videoID string) (*videodomain.Video, error) {
	video, err := u.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || !video.IsPublished {
		return nil, apierror.NotFound("video does not exist")
	}

	if err := u.videoRepo.IncrementViews(video.ID); err != nil {
		return nil, err
	}
	video.Views++

	// History upkeep is best-effort; a failed write must not block playback.
	if err := u.videoRepo.RecordWatch(viewerID, video.ID); err != nil {
		log.Warn("failed to record watch entry", "video", video.ID, "err", err)
	}

	return video, nil
}

func (u *videoUsecase) ListByChannel(username string) ([]videodomain.Video, error) {
	channel, err := u.users.FindByUsername(strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, apierror.NotFound("channel does not exist")
	}
	return u.videoRepo.ListByOwner(channel.ID)
}

func (u *videoUsecase) WatchHistory(userID string) ([]videodto.WatchHistoryItem, error) {
	return u.videoRepo.WatchHistory(userID)
}
