package application

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/infrastructure/storage"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/media"
)

// UploadResult is the stored file's public URL, plus the thumbnail for images.
type UploadResult struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type UploadService struct {
	Store  storage.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUploadService(store storage.Store, logger *logrus.Logger) *UploadService {
	return &UploadService{Store: store, Logger: logger, Now: time.Now}
}

// Upload stores data under a timestamped sanitized name. Images are resized
// and get a thumbnail; the pair is written all-or-nothing. Errors are plain
// wrapped causes, reported to clients as a generic upload failure.
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadResult, error) {
	name := media.StoredName(filename, s.Now())

	if !media.IsImage(contentType) {
		url, err := s.Store.Put(ctx, name, contentType, data)
		if err != nil {
			return nil, fmt.Errorf("store file: %w", err)
		}
		return &UploadResult{URL: url}, nil
	}

	out, err := media.Process(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("process image: %w", err)
	}
	mainName := media.JPEGName(name)
	thumbName := media.ThumbPrefix + mainName

	url, err := s.Store.Put(ctx, mainName, "image/jpeg", out.Main)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	thumb, err := s.Store.Put(ctx, thumbName, "image/jpeg", out.Thumb)
	if err != nil {
		if derr := s.Store.Delete(ctx, mainName); derr != nil {
			helpers.LogWarn(s.Logger, "orphaned upload cleanup failed", derr, logrus.Fields{"file": mainName})
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}
	return &UploadResult{URL: url, Thumbnail: thumb}, nil
}
