package api

import (
	"net/http"

	userDelivery "vidtube-backend/internal/user/delivery"
	userUsecasePkg "vidtube-backend/internal/user/usecase"
	videoDelivery "vidtube-backend/internal/video/delivery"
	videoUsecasePkg "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, userUsecase userUsecasePkg.UserUsecase, videoUsecase videoUsecasePkg.VideoUsecase, cfg *config.Config) {
	userHandler := userDelivery.NewUserHandler(userUsecase, cfg)
	videoHandler := videoDelivery.NewVideoHandler(videoUsecase, cfg)

	authRequired := userDelivery.AuthMiddleware(userUsecase)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh-token", userHandler.RefreshToken)
			users.POST("/logout", authRequired, userHandler.Logout)
			users.POST("/change-password", authRequired, userHandler.ChangePassword)
			users.GET("/current-user", authRequired, userHandler.Me)
			users.PATCH("/update-account", authRequired, userHandler.UpdateAccount)
			users.PATCH("/avatar", authRequired, userHandler.UpdateAvatar)
			users.PATCH("/cover-image", authRequired, userHandler.UpdateCoverImage)
			users.GET("/c/:username", authRequired, userHandler.ChannelProfile)
			users.GET("/c/:username/videos", authRequired, videoHandler.ListByChannel)
			users.GET("/history", authRequired, videoHandler.WatchHistory)
		}

		subscriptions := api.Group("/subscriptions")
		subscriptions.Use(authRequired)
		{
			subscriptions.POST("/c/:username", userHandler.ToggleSubscription)
		}

		videos := api.Group("/videos")
		videos.Use(authRequired)
		{
			videos.POST("", videoHandler.Publish)
			videos.GET("/:videoId", videoHandler.Get)
		}
	}
}
