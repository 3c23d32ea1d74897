package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"min":                "must be at least %s characters long",
	"max":                "maximum at %s characters long",
	"gte":                "must be greater than or equal to %s",
	"lte":                "must be less than or equal to %s",
	"oneof":              "must be one of [%s]",
	"mongodb":            "must be a valid id",
	"phone_number":       "phone must be a valid phone number",
	"calendar_date":      "date must follow the YYYY-MM-DD format",
	"clock_time":         "time must follow the HH:MM format",
	"appointment_status": "must be one of [pending, confirmed, cancelled, completed]",
	"working_day":        "must be a day of the week",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Tags whose message already names the field
var TagsWithStandaloneMessage = map[string]bool{
	"phone_number":  true,
	"calendar_date": true,
	"clock_time":    true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidImageFormat            = "Only image files (jpeg, jpg, png, gif, webp) are allowed!"
	ErrClientImageTooLarge                 = "the image you uploaded exceeds the maximum allowed size"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidAPIKey                 = "Invalid API key"
	ErrClientAPIKeyRequired                = "API key is required"
	ErrClientTooManyRequests               = "Too many requests, you are blocked temporarily."
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientBlogNotFound                  = "Blog not found"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientSlotAlreadyBooked             = "This time slot is already booked"
	ErrClientInvalidStatusTransition       = "appointment status cannot change from %s to %s"
	ErrClientNoFieldsToUpdate              = "no fields to update"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "invalid %s parameter in url"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form body"
	ErrDevInvalidFormat              = "invalid %s format"
	ErrDevImageValidationFailed      = "image validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevAuthTokenInvalid           = "identity token is invalid"
	ErrDevAuthSigningMethod          = "unexpected identity token signing method"
	ErrDevAuthIdentityMissing        = "identity missing from context"
	ErrDevInvalidAPIKey              = "invalid admin API key"
	ErrDevAPIKeyRequired             = "admin API key required"
	ErrDevRateLimited                = "booking rate limit exceeded for %s"
	ErrDevDoctorNotExists            = "doctor %s does not exist"
	ErrDevBlogNotExists              = "blog %s does not exist"
	ErrDevAppointmentNotExists       = "appointment %s does not exist"
	ErrDevSlotAlreadyBooked          = "slot %s already has an active appointment"
	ErrDevSlotBeingBooked            = "slot %s lock held by another request"
	ErrDevInvalidStatusTransition    = "invalid appointment status transition"
	ErrDevNoFieldsToUpdate           = "update request carries no fields"
	ErrDevDBFailedToFindDocument     = "failed to find document in database"
	ErrDevDBFailedToInsertDocument   = "failed to insert document in database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document in database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document in database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index %s"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioFailedToDeleteObject  = "failed to delete object in bucket %s"
	ErrDevRedisGetNoData             = "failed to get data from redis key %s"
	ErrDevRedisSetData               = "failed to set data in redis"
	ErrDevRedisDeleteData            = "failed to delete data in redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
)
