package storage

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"net"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const mediaBucketCheckTimeout = 10 * time.Second

// NewMinio connects to the object store holding doctor and blog images and
// checks that the media bucket can be reached with the configured keys.
func NewMinio(driverConfig *config.DriverConfig, bucketName string, logger *zap.Logger) *minio.Client {
	endpoint := net.JoinHostPort(driverConfig.Minio.Host, driverConfig.Minio.Port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		logger.Fatal("storage: invalid media store settings",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mediaBucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		logger.Fatal("storage: media store unreachable",
			zap.String("endpoint", endpoint),
			zap.String("bucket", bucketName),
			zap.Error(err),
		)
	}

	// a missing bucket is created later by the media storage service
	logger.Info("storage: media store connected",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucketName),
		zap.Bool("bucket_exists", exists),
	)
	return client
}
