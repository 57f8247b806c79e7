package storage

import (
	"context"
	"fmt"
)

// DocumentUploader stores a rendered document and returns a public download URL.
type DocumentUploader interface {
	Upload(ctx context.Context, data []byte, logicalName string) (string, error)
}

// UploadConfig is the stable upload contract. Namespace is the folder the
// document lands in; ForceDownload makes the URL trigger a file save instead
// of inline display.
type UploadConfig struct {
	Namespace     string
	ForceDownload bool
	ResourceType  string
	Format        string
}

// UploadError wraps any failure storing a document.
type UploadError struct {
	PublicID string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("Failed to upload PDF to Cloudinary: %s: %v", e.PublicID, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
