package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/storage"
)

const maxImageSize = 5 << 20 // 5 MiB

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type UploadResult struct {
	URL string `json:"url"`
}

type Service interface {
	// UploadImage stores an accomplishment photo and returns its public URL.
	UploadImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*UploadResult, error)
}

type service struct {
	images storage.ImageStorage
}

func NewService(images storage.ImageStorage) Service {
	return &service{images: images}
}

func (s *service) UploadImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*UploadResult, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image uploads are not configured: %w", apperror.ErrInternal)
	}

	if file.Size > maxImageSize {
		return nil, apperror.NewValidation(map[string]string{
			"file": "image must be 5MB or smaller",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, apperror.NewValidation(map[string]string{
			"file": "image must be a jpg, png, gif or webp",
		})
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	fileName := fmt.Sprintf("%s-%s", userID, uuid.NewString())
	url, err := s.images.UploadImage(ctx, src, "accomplishments", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &UploadResult{URL: url}, nil
}
