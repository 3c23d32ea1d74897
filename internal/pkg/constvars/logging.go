package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"

	LoggingDoctorIDKey      = "doctor_id"
	LoggingDoctorCountKey   = "doctor_count"
	LoggingBlogIDKey        = "blog_id"
	LoggingBlogCountKey     = "blog_count"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingAppointmentCount = "appointment_count"
	LoggingSlotKey          = "slot"
	LoggingStatusKey        = "status"
	LoggingPatientEmailKey  = "patient_email"
	LoggingLimitKey         = "limit"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingQueueNameKey          = "queue_name"
	LoggingCronSpecKey           = "cron_spec"
)
