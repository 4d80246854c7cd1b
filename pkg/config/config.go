package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// MediaConfig holds the credentials for the hosted media store. It is loaded
// once at startup and passed into the store constructor explicitly; nothing in
// the process mutates it afterwards.
type MediaConfig struct {
	Endpoint      string
	Region        string
	AccessKeyID   string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type Config struct {
	Port          string
	DatabaseDSN   string
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	TempUploadDir string
	Media         MediaConfig
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("ACCESS_TOKEN_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 240 * time.Hour // 10 days
	if exp := os.Getenv("REFRESH_TOKEN_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=vidtube password=vidtube dbname=vidtube port=5432 sslmode=disable"),
		AccessSecret:  getEnv("ACCESS_TOKEN_SECRET", "access-secret-change-in-production"),
		RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", "refresh-secret-change-in-production"),
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
		TempUploadDir: getEnv("TEMP_UPLOAD_DIR", os.TempDir()),
		Media: MediaConfig{
			Endpoint:      getEnv("MEDIA_ENDPOINT", ""),
			Region:        getEnv("MEDIA_REGION", "us-east-1"),
			AccessKeyID:   getEnv("MEDIA_ACCESS_KEY_ID", ""),
			SecretKey:     getEnv("MEDIA_SECRET_KEY", ""),
			Bucket:        getEnv("MEDIA_BUCKET", "vidtube-media"),
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
