package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
	"go.uber.org/zap"
)

const attachmentFlag = "fl_attachment"

// uploadAPI is the part of the Cloudinary SDK the uploader needs.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader implements DocumentUploader on Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	api    uploadAPI
	cfg    UploadConfig
	logger *zap.Logger
}

// NewCloudinaryUploader creates a new CloudinaryUploader. Delivery URLs are always https.
func NewCloudinaryUploader(cld *cloudinary.Cloudinary, cfg UploadConfig, logger *zap.Logger) *CloudinaryUploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResourceType == "" {
		cfg.ResourceType = "image"
	}
	if cfg.Format == "" {
		cfg.Format = "pdf"
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{
		cld:    cld,
		api:    &cld.Upload,
		cfg:    cfg,
		logger: logger,
	}
}

// Upload stores data under <namespace>/<logicalName> and returns its delivery URL.
// An existing asset with the same public ID is overwritten.
func (s *CloudinaryUploader) Upload(ctx context.Context, data []byte, logicalName string) (string, error) {
	publicID := s.publicID(logicalName)
	if len(data) == 0 {
		return "", &UploadError{PublicID: publicID, Err: errors.New("empty document")}
	}

	start := time.Now()
	result, err := s.api.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: s.cfg.ResourceType,
		Format:       s.cfg.Format,
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return "", &UploadError{PublicID: publicID, Err: err}
	}
	if result == nil {
		return "", &UploadError{PublicID: publicID, Err: errors.New("no upload result returned")}
	}
	if result.Error.Message != "" {
		return "", &UploadError{PublicID: publicID, Err: errors.New(result.Error.Message)}
	}
	if result.PublicID != "" {
		publicID = result.PublicID
	}

	url, err := s.DownloadURL(publicID)
	if err != nil {
		return "", &UploadError{PublicID: publicID, Err: err}
	}

	s.logger.Info("document uploaded",
		zap.String("publicId", publicID),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("url", url))
	return url, nil
}

// DownloadURL builds the delivery URL for an uploaded document.
func (s *CloudinaryUploader) DownloadURL(publicID string) (string, error) {
	a, err := s.getAsset(publicID + "." + s.cfg.Format)
	if err != nil {
		return "", fmt.Errorf("failed to get asset: %w", err)
	}
	if s.cfg.ForceDownload {
		a.Transformation = attachmentFlag
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("failed to get URL string: %w", err)
	}
	return url, nil
}

// getAsset returns an asset instance based on the configured resource type.
func (s *CloudinaryUploader) getAsset(publicID string) (*asset.Asset, error) {
	switch s.cfg.ResourceType {
	case "image":
		return s.cld.Image(publicID)
	case "video":
		return s.cld.Video(publicID)
	default:
		return s.cld.Media(publicID)
	}
}

func (s *CloudinaryUploader) publicID(logicalName string) string {
	if s.cfg.Namespace == "" {
		return logicalName
	}
	return path.Join(s.cfg.Namespace, logicalName)
}
