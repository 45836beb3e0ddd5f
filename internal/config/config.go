// Package config loads the runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Upload backend selectors.
const (
	UploadCloudinary = "cloudinary"
	UploadS3         = "s3"
)

type Config struct {
	Addr          string
	LogLevel      string
	SessionSecret string

	// External content API, e.g. https://api.example.com/api.
	APIBaseURL string

	// Image host. Provider picks the backend; the unused block may stay
	// empty.
	UploadProvider string
	Cloudinary     CloudinaryConfig
	S3             S3Config

	// Places autocomplete for the camper location field.
	PlacesBaseURL string
	PlacesAPIKey  string

	// Cron spec for refreshing the cached provider profile.
	ProfileRefreshCron string
}

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	Folder       string
}

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	CustomDomain    string
}

// Load reads the environment. Only the API base URL is mandatory;
// everything else has a workable default.
func Load() (*Config, error) {
	// .env 不存在时忽略，生产环境直接用环境变量
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getenv("ROAMCMS_ADDR", ":37371"),
		LogLevel:      getenv("ROAMCMS_LOG_LEVEL", "info"),
		SessionSecret: getenv("ROAMCMS_SESSION_SECRET", "secret-key-should-be-changed"),

		APIBaseURL: os.Getenv("ROAMCMS_API_BASE_URL"),

		UploadProvider: getenv("ROAMCMS_UPLOAD_PROVIDER", UploadCloudinary),
		Cloudinary: CloudinaryConfig{
			CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
			UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
			Folder:       getenv("CLOUDINARY_FOLDER", "roamcms"),
		},
		S3: S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          os.Getenv("S3_REGION"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			CustomDomain:    os.Getenv("S3_CUSTOM_DOMAIN"),
		},

		PlacesBaseURL: getenv("ROAMCMS_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place/autocomplete/json"),
		PlacesAPIKey:  os.Getenv("ROAMCMS_PLACES_API_KEY"),

		ProfileRefreshCron: getenv("ROAMCMS_PROFILE_REFRESH_CRON", "@every 10m"),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("ROAMCMS_API_BASE_URL 未配置")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
