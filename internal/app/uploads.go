package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"homelyhub/internal/domain"
)

// UploadService fronts the image storage collaborator. When the collaborator
// is down or unconfigured the upload degrades to an inline data URL instead
// of failing the user-facing operation; such assets carry a `local_` public
// id and are never sent upstream for deletion.
type UploadService struct {
	store domain.ImageStore // nil when no upstream is configured
}

func NewUploadService(store domain.ImageStore) *UploadService {
	return &UploadService{store: store}
}

type UploadResult struct {
	Image   domain.Image `json:"image"`
	Storage string       `json:"storage"` // "cloudinary" | "inline"
	Bytes   int          `json:"bytes"`
}

func (s *UploadService) Upload(ctx context.Context, actor domain.Actor, data []byte, filename, contentType string) (UploadResult, error) {
	if err := requireActor(actor); err != nil {
		return UploadResult{}, err
	}
	if len(data) == 0 {
		return UploadResult{}, fmt.Errorf("%w: an image file is required", domain.ErrValidation)
	}

	if s.store != nil {
		img, err := s.store.Upload(ctx, data, filename)
		if err == nil {
			return UploadResult{Image: img, Storage: "cloudinary", Bytes: len(data)}, nil
		}
		log.Warn().Str("file", filename).Err(err).Msg("image upstream failed, storing inline")
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	img := domain.Image{
		URL:      "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		PublicID: "local_" + uuid.NewString(),
	}
	return UploadResult{Image: img, Storage: "inline", Bytes: len(data)}, nil
}

func (s *UploadService) Delete(ctx context.Context, actor domain.Actor, publicID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if publicID == "" {
		return fmt.Errorf("%w: image public id is required", domain.ErrValidation)
	}
	// inline assets have nothing upstream
	if strings.HasPrefix(publicID, "local_") || s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("%w: image delete: %v", domain.ErrUpstream, err)
	}
	return nil
}
