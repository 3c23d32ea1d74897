package storage

import (
	"bytes"
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Read-only access for anonymous clients, so stored image URLs can be
// rendered directly by the frontend.
const publicReadPolicyFormat = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

type minioStorage struct {
	MinioClient   *minio.Client
	BucketName    string
	PublicBaseURL string
	Log           *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, bucketName, publicBaseURL string, logger *zap.Logger) contracts.MediaStorage {
	return &minioStorage{
		MinioClient:   minioClient,
		BucketName:    bucketName,
		PublicBaseURL: publicBaseURL,
		Log:           logger,
	}
}

func (m *minioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := m.MinioClient.BucketExists(ctx, m.BucketName)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	if exists {
		return nil
	}

	err = m.MinioClient.MakeBucket(ctx, m.BucketName, minio.MakeBucketOptions{})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	err = m.MinioClient.SetBucketPolicy(ctx, m.BucketName, fmt.Sprintf(publicReadPolicyFormat, m.BucketName))
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioStorage.EnsureBucket created bucket",
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
	)
	return nil
}

func (m *minioStorage) UploadImage(ctx context.Context, folder string, image *requests.ImageUpload) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	objectName := utils.GenerateObjectName(folder, image.FileName)

	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(image.Data), image.Size, minio.PutObjectOptions{
		ContentType: image.ContentType,
	})
	if err != nil {
		m.Log.Error("minioStorage.UploadImage error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioStorage.UploadImage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return utils.BuildObjectURL(m.PublicBaseURL, m.BucketName, objectName), nil
}

func (m *minioStorage) DeleteImage(ctx context.Context, imageURL string) error {
	objectName, err := utils.ObjectNameFromURL(imageURL, m.BucketName)
	if err != nil {
		return exceptions.ErrMinioDeleteObject(err, m.BucketName)
	}

	err = m.MinioClient.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioDeleteObject(err, m.BucketName)
	}
	return nil
}
