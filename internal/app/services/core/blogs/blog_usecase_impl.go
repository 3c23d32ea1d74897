package blogs

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/metrics"
	"doctor-appointment-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type blogUsecase struct {
	BlogRepository contracts.BlogRepository
	MediaStorage   contracts.MediaStorage
	InternalConfig *config.InternalConfig
	Metrics        *metrics.Metrics
	Log            *zap.Logger
}

var (
	blogUsecaseInstance contracts.BlogUsecase
	onceBlogUsecase     sync.Once
)

func NewBlogUsecase(
	blogMongoRepository contracts.BlogRepository,
	mediaStorage contracts.MediaStorage,
	internalConfig *config.InternalConfig,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.BlogUsecase {
	onceBlogUsecase.Do(func() {
		instance := &blogUsecase{
			BlogRepository: blogMongoRepository,
			MediaStorage:   mediaStorage,
			InternalConfig: internalConfig,
			Metrics:        appMetrics,
			Log:            logger,
		}
		blogUsecaseInstance = instance
	})
	return blogUsecaseInstance
}

func (uc *blogUsecase) FindAll(ctx context.Context) ([]responses.Blog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blogUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	blogs, err := uc.BlogRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("blogUsecase.FindAll error fetching blogs from repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Blog, len(blogs))
	for i, eachBlog := range blogs {
		response[i] = eachBlog.ConvertIntoResponse()
	}

	uc.Log.Info("blogUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBlogCountKey, len(response)),
	)
	return response, nil
}

func (uc *blogUsecase) FindByID(ctx context.Context, blogID string) (*responses.Blog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blogUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)

	blog, err := uc.findExisting(ctx, requestID, blogID)
	if err != nil {
		return nil, err
	}

	response := blog.ConvertIntoResponse()
	return &response, nil
}

func (uc *blogUsecase) CreateBlog(ctx context.Context, request *requests.CreateBlog) (*responses.Blog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blogUsecase.CreateBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.validateImage(request.Image); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:            request.Title,
		Content:          request.Content,
		ShortDescription: request.ShortDescription,
		Author:           request.Author,
	}

	if request.Image != nil {
		imageURL, err := uc.MediaStorage.UploadImage(ctx, constvars.ImageFolderBlogs, request.Image)
		if err != nil {
			uc.Log.Error("blogUsecase.CreateBlog error uploading image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		blog.ImageURL = imageURL
	}

	blogID, err := uc.BlogRepository.CreateBlog(ctx, blog)
	if err != nil {
		uc.Log.Error("blogUsecase.CreateBlog error inserting blog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.cleanupImage(ctx, requestID, blog.ImageURL)
		return nil, err
	}

	uc.Log.Info("blogUsecase.CreateBlog succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)
	response := blog.ConvertIntoResponse()
	return &response, nil
}

func (uc *blogUsecase) UpdateBlog(ctx context.Context, blogID string, request *requests.UpdateBlog) (*responses.Blog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blogUsecase.UpdateBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)

	if err := uc.validateImage(request.Image); err != nil {
		return nil, err
	}

	blog, err := uc.findExisting(ctx, requestID, blogID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		blog.Title = *request.Title
	}
	if request.Content != nil {
		blog.Content = *request.Content
	}
	if request.ShortDescription != nil {
		blog.ShortDescription = *request.ShortDescription
	}
	if request.Author != nil {
		blog.Author = *request.Author
	}

	previousImageURL := blog.ImageURL
	if request.Image != nil {
		imageURL, err := uc.MediaStorage.UploadImage(ctx, constvars.ImageFolderBlogs, request.Image)
		if err != nil {
			uc.Log.Error("blogUsecase.UpdateBlog error uploading image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		blog.ImageURL = imageURL
	}

	err = uc.BlogRepository.UpdateBlog(ctx, blog)
	if err != nil {
		uc.Log.Error("blogUsecase.UpdateBlog error updating blog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if request.Image != nil {
			uc.cleanupImage(ctx, requestID, blog.ImageURL)
		}
		return nil, err
	}

	if request.Image != nil {
		uc.cleanupImage(ctx, requestID, previousImageURL)
	}

	uc.Log.Info("blogUsecase.UpdateBlog succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)
	response := blog.ConvertIntoResponse()
	return &response, nil
}

func (uc *blogUsecase) DeleteBlog(ctx context.Context, blogID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blogUsecase.DeleteBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)

	blog, err := uc.findExisting(ctx, requestID, blogID)
	if err != nil {
		return err
	}

	err = uc.BlogRepository.DeleteBlog(ctx, blogID)
	if err != nil {
		uc.Log.Error("blogUsecase.DeleteBlog error deleting blog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.cleanupImage(ctx, requestID, blog.ImageURL)

	uc.Log.Info("blogUsecase.DeleteBlog succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlogIDKey, blogID),
	)
	return nil
}

func (uc *blogUsecase) findExisting(ctx context.Context, requestID, blogID string) (*models.Blog, error) {
	blog, err := uc.BlogRepository.FindByID(ctx, blogID)
	if err != nil {
		uc.Log.Error("blogUsecase.findExisting error fetching blog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBlogIDKey, blogID),
			zap.Error(err),
		)
		return nil, err
	}
	if blog == nil {
		return nil, exceptions.ErrBlogNotExist(nil, blogID)
	}
	return blog, nil
}

func (uc *blogUsecase) validateImage(image *requests.ImageUpload) error {
	err := utils.ValidateImage(image, uc.InternalConfig.Minio.ImageMaxUploadSizeInMB)
	if err == utils.ErrImageTooLarge {
		return exceptions.ErrImageTooLarge(err)
	}
	if err != nil {
		return exceptions.ErrImageValidation(err)
	}
	return nil
}

func (uc *blogUsecase) cleanupImage(ctx context.Context, requestID, imageURL string) {
	if imageURL == "" {
		return
	}
	err := uc.MediaStorage.DeleteImage(ctx, imageURL)
	if err != nil {
		uc.Metrics.ObserveMediaCleanupFailure(constvars.ResourceBlogs)
		uc.Log.Warn("blogUsecase.cleanupImage error deleting image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, imageURL),
			zap.Error(err),
		)
	}
}
