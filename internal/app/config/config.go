package config

import (
	"doctor-appointment-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://blog-seven-sigma-81.vercel.app",
	"https://blog-frontend-1-97ay.onrender.com",
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			URI:      utils.GetEnvString("MONGODB_URI", ""),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", "development"),
			Port:                        utils.GetEnvString("APP_PORT", ":5000"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                     utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", ""),
			AllowedOrigins:              utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", defaultAllowedOrigins),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeoutInSeconds:    utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:     utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:  utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			AdminAPIKeyHash:             utils.GetEnvString("APP_ADMIN_API_KEY_HASH", ""),
			DoctorCacheTTLInSeconds:     utils.GetEnvInt("APP_DOCTOR_CACHE_TTL_IN_SECONDS", 300),
			BookingMaxRequestsPerMinute: utils.GetEnvInt("APP_BOOKING_MAX_REQUESTS_PER_MINUTE", 20),
			BookingBlockTimeInMinutes:   utils.GetEnvInt("APP_BOOKING_BLOCK_TIME_IN_MINUTES", 5),
		},
		Mailer: AppMailer{
			EmailSender: utils.GetEnvString("MAILER_EMAIL_SENDER", "no-reply@example.com"),
		},
		Minio: AppMinio{
			BucketName:             utils.GetEnvString("MINIO_BUCKET_NAME", "doctor-appointment"),
			PublicBaseURL:          utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
			ImageMaxUploadSizeInMB: utils.GetEnvInt64("MINIO_IMAGE_MAX_UPLOAD_SIZE_IN_MB", 5),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("RABBITMQ_MAILER_QUEUE", "mailer"),
		},
		MongoDB: AppMongoDB{
			DBName: utils.GetEnvString("MONGODB_DB_NAME", "doctor_appointment"),
		},
		Identity: AppIdentity{
			JWTSecret: utils.GetEnvString("IDENTITY_JWT_SECRET", ""),
		},
		Appointment: AppAppointment{
			SlotLockTTLInSeconds:            utils.GetEnvInt("APP_SLOT_LOCK_TTL_IN_SECONDS", 10),
			CompletionWorkerCronSpec:        utils.GetEnvString("APP_COMPLETION_WORKER_CRON_SPEC", "@every 15m"),
			CompletionLeaderLockTTLInSecond: utils.GetEnvInt("APP_COMPLETION_LEADER_LOCK_TTL_IN_SECONDS", 300),
			CompletionBatchSize:             utils.GetEnvInt("APP_COMPLETION_BATCH_SIZE", 500),
		},
	}
}
