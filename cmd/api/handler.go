package api

import (
	userUsecase "vidtube-backend/internal/user/usecase"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	userUsecase  userUsecase.UserUsecase
	videoUsecase videoUsecase.VideoUsecase
	config       *config.Config
}

func NewHandler(userUc userUsecase.UserUsecase, videoUc videoUsecase.VideoUsecase, cfg *config.Config) *Handler {
	return &Handler{
		userUsecase:  userUc,
		videoUsecase: videoUc,
		config:       cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.userUsecase, h.videoUsecase, h.config)

	return r.Run(addr)
}
