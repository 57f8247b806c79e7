package utils

import (
	"fmt"

	"hyperinvoice/config"
	"hyperinvoice/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// Cloudinary builds the invoice document uploader from AppConfig.
func Cloudinary(logger *zap.Logger) (*storage.CloudinaryUploader, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}

	return storage.NewCloudinaryUploader(cld, storage.UploadConfig{
		Namespace:     cfg.CloudinaryFolder,
		ForceDownload: cfg.CloudinaryForceDownload,
		ResourceType:  cfg.CloudinaryResourceType,
	}, logger), nil
}
