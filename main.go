package main

import (
	api "vidtube-backend/cmd/api"
	userdomain "vidtube-backend/internal/user/domain"
	userRepo "vidtube-backend/internal/user/repository"
	userUsecase "vidtube-backend/internal/user/usecase"
	videodomain "vidtube-backend/internal/video/domain"
	videoRepo "vidtube-backend/internal/video/repository"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/media"

	"github.com/charmbracelet/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&userdomain.User{}, &userdomain.Subscription{}, &videodomain.Video{}, &videodomain.WatchEntry{}); err != nil {
		log.Fatal("failed to migrate database", "err", err)
	}

	// Media store credentials are loaded once and handed over explicitly.
	mediaStore, err := media.NewStore(cfg.Media)
	if err != nil {
		log.Fatal("failed to initialize media store", "err", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := userRepo.NewUserRepository(db)
	videoRepository := videoRepo.NewVideoRepository(db)

	// Initialize use cases
	userUsecaseInstance := userUsecase.NewUserUsecase(userRepository, mediaStore, cfg)
	videoUsecaseInstance := videoUsecase.NewVideoUsecase(videoRepository, userRepository, mediaStore)

	// Initialize HTTP handler
	handler := api.NewHandler(userUsecaseInstance, videoUsecaseInstance, cfg)

	log.Info("server starting", "port", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "err", err)
	}
}
