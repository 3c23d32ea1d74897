package contracts

import (
	"context"
	"doctor-appointment-service/internal/pkg/dto/requests"
)

type MediaStorage interface {
	// UploadImage stores image under folder and returns its public URL
	UploadImage(ctx context.Context, folder string, image *requests.ImageUpload) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
	EnsureBucket(ctx context.Context) error
}
