package repository

import (
	"errors"
	"time"

	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// videoRepository implements VideoRepository on gorm/Postgres
type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{
		db: db,
	}
}

func (r *videoRepository) Create(video *videodomain.Video) error {
	video.ID = uuid.New().String()
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	return r.db.Create(video).Error
}

func (r *videoRepository) FindByID(id string) (*videodomain.Video, error) {
	var video videodomain.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) ListByOwner(ownerID string) ([]videodomain.Video, error) {
	var videos []videodomain.Video
	err := r.db.Where("owner_id = ? AND is_published = ?", ownerID, true).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&videodomain.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) RecordWatch(userID, videoID string) error {
	entry := &videodomain.WatchEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	// Re-watching refreshes the existing entry instead of duplicating it.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"watched_at": entry.WatchedAt}),
	}).Create(entry).Error
}

func (r *videoRepository) WatchHistory(userID string) ([]videodto.WatchHistoryItem, error) {
	var items []videodto.WatchHistoryItem
	err := r.db.Table("watch_entries").
		Select(`videos.id AS video_id,
			videos.title,
			videos.thumbnail_url,
			videos.duration_sec,
			videos.views,
			users.username AS owner_username,
			users.avatar_url AS owner_avatar_url,
			watch_entries.watched_at`).
		Joins("JOIN videos ON videos.id = watch_entries.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_entries.user_id = ?", userID).
		Order("watch_entries.watched_at DESC").
		Scan(&items).Error
	return items, err
}
