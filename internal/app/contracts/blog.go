package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type BlogRepository interface {
	EnsureIndexes(ctx context.Context) error
	FindAll(ctx context.Context) ([]models.Blog, error)
	FindByID(ctx context.Context, blogID string) (*models.Blog, error)
	CreateBlog(ctx context.Context, blog *models.Blog) (string, error)
	UpdateBlog(ctx context.Context, blog *models.Blog) error
	DeleteBlog(ctx context.Context, blogID string) error
}

type BlogUsecase interface {
	FindAll(ctx context.Context) ([]responses.Blog, error)
	FindByID(ctx context.Context, blogID string) (*responses.Blog, error)
	CreateBlog(ctx context.Context, request *requests.CreateBlog) (*responses.Blog, error)
	UpdateBlog(ctx context.Context, blogID string, request *requests.UpdateBlog) (*responses.Blog, error)
	DeleteBlog(ctx context.Context, blogID string) error
}
