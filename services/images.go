package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/sports-portal/storage"
)

// ImageUpload is an image received from a multipart form.
type ImageUpload struct {
	Reader      io.Reader
	ContentType string
}

func uploadImage(ctx context.Context, uploader storage.FileUploader, prefix string, img *ImageUpload) (*storage.UploadResult, error) {
	if uploader == nil {
		return nil, ErrStorageNotConfigured
	}
	key, err := storage.ObjectKey(prefix, img.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageType, img.ContentType)
		}
		return nil, err
	}
	result, err := uploader.Upload(ctx, key, img.ContentType, img.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return result, nil
}

// deleteImage removes a stored object; failures are only logged.
func deleteImage(ctx context.Context, uploader storage.FileUploader, logger *slog.Logger, key *string) {
	if uploader == nil || key == nil || *key == "" {
		return
	}
	if err := uploader.Delete(ctx, *key); err != nil {
		logger.Warn("failed to delete stored image", "key", *key, "error", err)
	}
}
