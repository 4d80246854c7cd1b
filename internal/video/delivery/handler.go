package delivery

import (
	"mime/multipart"
	"net/http"
	"path/filepath"

	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoUsecase usecase.VideoUsecase
	config       *config.Config
}

func NewVideoHandler(videoUsecase usecase.VideoUsecase, cfg *config.Config) *VideoHandler {
	return &VideoHandler{
		videoUsecase: videoUsecase,
		config:       cfg,
	}
}

func (h *VideoHandler) saveTemp(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.config.TempUploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func (h *VideoHandler) Publish(c *gin.Context) {
	var req videodto.PublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Err(c, apierror.BadRequest("title is required", err.Error()))
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		response.Err(c, apierror.BadRequest("video file is required"))
		return
	}
	videoPath, err := h.saveTemp(c, videoFile)
	if err != nil {
		response.Err(c, err)
		return
	}

	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		response.Err(c, apierror.BadRequest("thumbnail file is required"))
		return
	}
	thumbnailPath, err := h.saveTemp(c, thumbnailFile)
	if err != nil {
		response.Err(c, err)
		return
	}

	video, err := h.videoUsecase.Publish(c.GetString("userID"), &req, videoPath, thumbnailPath)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, video, "Video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoUsecase.Get(c.GetString("userID"), c.Param("videoId"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, video, "Video fetched successfully")
}

func (h *VideoHandler) ListByChannel(c *gin.Context) {
	videos, err := h.videoUsecase.ListByChannel(c.Param("username"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, videos, "Channel videos fetched successfully")
}

func (h *VideoHandler) WatchHistory(c *gin.Context) {
	history, err := h.videoUsecase.WatchHistory(c.GetString("userID"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, history, "Watch history fetched successfully")
}
