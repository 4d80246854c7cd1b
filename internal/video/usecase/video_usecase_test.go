package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	userdomain "vidtube-backend/internal/user/domain"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/media"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoRepo struct {
	videos  map[string]*videodomain.Video
	watches map[string]time.Time // userID|videoID -> watched at
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*videodomain.Video{}, watches: map[string]time.Time{}}
}

func (r *fakeVideoRepo) Create(video *videodomain.Video) error {
	video.ID = uuid.New().String()
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) FindByID(id string) (*videodomain.Video, error) {
	if v, ok := r.videos[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeVideoRepo) ListByOwner(ownerID string) ([]videodomain.Video, error) {
	var out []videodomain.Video
	for _, v := range r.videos {
		if v.OwnerID == ownerID && v.IsPublished {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) IncrementViews(id string) error {
	r.videos[id].Views++
	return nil
}

func (r *fakeVideoRepo) RecordWatch(userID, videoID string) error {
	r.watches[userID+"|"+videoID] = time.Now()
	return nil
}

func (r *fakeVideoRepo) WatchHistory(userID string) ([]videodto.WatchHistoryItem, error) {
	var items []videodto.WatchHistoryItem
	for key, at := range r.watches {
		for _, v := range r.videos {
			if key == userID+"|"+v.ID {
				items = append(items, videodto.WatchHistoryItem{
					VideoID:   v.ID,
					Title:     v.Title,
					Views:     v.Views,
					WatchedAt: at,
				})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].WatchedAt.After(items[j].WatchedAt) })
	return items, nil
}

type fakeUsers struct {
	byName map[string]*userdomain.User
}

func (f *fakeUsers) FindByUsername(username string) (*userdomain.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, nil
}

type fakeUploader struct{}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", media.ErrNoFile
	}
	return "https://cdn.example.com/" + localPath, nil
}

func newTestUsecase() (usecase.VideoUsecase, *fakeVideoRepo) {
	repo := newFakeVideoRepo()
	users := &fakeUsers{byName: map[string]*userdomain.User{
		"alice": {ID: "user-1", Username: "alice"},
	}}
	return usecase.NewVideoUsecase(repo, users, &fakeUploader{}), repo
}

func TestPublishAndGet(t *testing.T) {
	uc, repo := newTestUsecase()

	video, err := uc.Publish("user-1", &videodto.PublishRequest{Title: "First"}, "/tmp/clip.mp4", "/tmp/thumb.png")
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
	assert.NotEmpty(t, video.VideoURL)
	assert.NotEmpty(t, video.ThumbnailURL)

	got, err := uc.Get("viewer-1", video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	// The view must have landed in the viewer's history.
	_, watched := repo.watches["viewer-1|"+video.ID]
	assert.True(t, watched)
}

func TestPublishMissingFiles(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Publish("user-1", &videodto.PublishRequest{Title: "First"}, "", "/tmp/thumb.png")
	require.Error(t, err)
	assert.Equal(t, 400, apierror.From(err).Code)

	_, err = uc.Publish("user-1", &videodto.PublishRequest{Title: "First"}, "/tmp/clip.mp4", "")
	require.Error(t, err)
	assert.Equal(t, 400, apierror.From(err).Code)
}

func TestGetUnknownVideo(t *testing.T) {
	uc, _ := newTestUsecase()
	_, err := uc.Get("viewer-1", "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apierror.From(err).Code)
}

func TestListByChannel(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Publish("user-1", &videodto.PublishRequest{Title: "First"}, "/tmp/a.mp4", "/tmp/a.png")
	require.NoError(t, err)

	videos, err := uc.ListByChannel("Alice")
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	_, err = uc.ListByChannel("ghost")
	require.Error(t, err)
	assert.Equal(t, 404, apierror.From(err).Code)
}

func TestWatchHistoryOrder(t *testing.T) {
	uc, repo := newTestUsecase()

	first, err := uc.Publish("user-1", &videodto.PublishRequest{Title: "First"}, "/tmp/a.mp4", "/tmp/a.png")
	require.NoError(t, err)
	second, err := uc.Publish("user-1", &videodto.PublishRequest{Title: "Second"}, "/tmp/b.mp4", "/tmp/b.png")
	require.NoError(t, err)

	repo.watches["viewer-1|"+first.ID] = time.Now().Add(-time.Hour)
	repo.watches["viewer-1|"+second.ID] = time.Now()

	history, err := uc.WatchHistory("viewer-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].VideoID, "most recent watch comes first")
}
