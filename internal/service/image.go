package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/msomdec/house-rentals/internal/domain"
)

const (
	// MaxImageSize bounds a single listing photo upload.
	MaxImageSize = 5 * 1024 * 1024

	imagePathPrefix = "/images/"
)

// ImageService stores uploaded listing photos and serves them back.
type ImageService struct {
	files domain.FileStore
}

// NewImageService creates a new ImageService.
func NewImageService(files domain.FileStore) *ImageService {
	return &ImageService{files: files}
}

// Upload validates and stores an image, returning the URL it is served from.
func (s *ImageService) Upload(ctx context.Context, contentType string, data []byte) (string, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", invalid("Only JPEG and PNG images are accepted.")
	}
	if len(data) == 0 {
		return "", invalid("The uploaded image is empty.")
	}
	if len(data) > MaxImageSize {
		return "", invalid("Image exceeds the 5MB limit.")
	}

	key := uuid.NewString()
	if err := s.files.Save(ctx, key, contentType, data); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return ImageURL(key), nil
}

// Get returns the bytes and content type stored under key.
func (s *ImageService) Get(ctx context.Context, key string) ([]byte, string, error) {
	return s.files.Get(ctx, key)
}

// Discard removes an uploaded image by its URL. URLs that do not point at
// this server are ignored.
func (s *ImageService) Discard(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, imagePathPrefix)
	if !ok || key == "" {
		return nil
	}
	return s.files.Delete(ctx, key)
}

// ImageURL is the path an uploaded image with the given key is served from.
func ImageURL(key string) string {
	return imagePathPrefix + key
}
