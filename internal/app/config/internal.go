package config

type InternalConfig struct {
	App         App            `mapstructure:"app"`
	Mailer      AppMailer      `mapstructure:"mailer"`
	Minio       AppMinio       `mapstructure:"minio"`
	RabbitMQ    AppRabbitMQ    `mapstructure:"rabbitmq"`
	MongoDB     AppMongoDB     `mapstructure:"mongodb"`
	Identity    AppIdentity    `mapstructure:"identity"`
	Appointment AppAppointment `mapstructure:"appointment"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	// AdminAPIKeyHash is a bcrypt hash; an empty value leaves admin routes open
	AdminAPIKeyHash             string `mapstructure:"admin_api_key_hash"`
	DoctorCacheTTLInSeconds     int    `mapstructure:"doctor_cache_ttl_in_seconds"`
	BookingMaxRequestsPerMinute int    `mapstructure:"booking_max_requests_per_minute"`
	BookingBlockTimeInMinutes   int    `mapstructure:"booking_block_time_in_minutes"`
}

type AppMailer struct {
	EmailSender string `mapstructure:"email_sender"`
}

type AppMinio struct {
	BucketName             string `mapstructure:"bucket_name"`
	PublicBaseURL          string `mapstructure:"public_base_url"`
	ImageMaxUploadSizeInMB int64  `mapstructure:"image_max_upload_size_in_mb"`
}

type AppRabbitMQ struct {
	MailerQueue string `mapstructure:"mailer_queue"`
}

type AppMongoDB struct {
	DBName string `mapstructure:"db_name"`
}

type AppIdentity struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type AppAppointment struct {
	SlotLockTTLInSeconds int `mapstructure:"slot_lock_ttl_in_seconds"`
	// CompletionWorkerCronSpec schedules the job that marks past confirmed appointments completed
	CompletionWorkerCronSpec        string `mapstructure:"completion_worker_cron_spec"`
	CompletionLeaderLockTTLInSecond int    `mapstructure:"completion_leader_lock_ttl_in_second"`
	CompletionBatchSize             int    `mapstructure:"completion_batch_size"`
}
