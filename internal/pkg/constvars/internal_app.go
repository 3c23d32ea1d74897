package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
	CONTEXT_ADMIN_API_KEY_AUTH       ContextKey = "admin_api_key_auth"
)

const (
	ResourceDoctors      = "doctors"
	ResourceBlogs        = "blogs"
	ResourceAppointments = "appointments"
)

const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionBlogs        = "blogs"
	MongoCollectionAppointments = "appointments"

	MongoIndexAppointmentActiveSlot = "appointment_active_slot_unique"
	MongoIndexAppointmentDoctor     = "appointment_doctor"
	MongoIndexAppointmentEmail      = "appointment_patient_email"
	MongoIndexBlogCreatedAt         = "blog_created_at"
)

const (
	RedisKeyDoctorList       = "doctors:list"
	RedisKeySlotLockFormat   = "lock:slot:%s:%s:%s"
	RedisKeyCompletionLeader = "appointments:completion:leader"
)

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

const (
	AppointmentDateLayout = "2006-01-02"
	AppointmentTimeLayout = "15:04"
)

const (
	ImageFolderDoctors      = "doctors"
	ImageFolderBlogs        = "blogs"
	ImageFormFieldName      = "imageUrl"
	MultipartMaxMemory      = 10 << 20
	DoctorFieldExperience   = "experience"
	DoctorFieldWorkingHours = "workingHours"
)

var ImageAllowedFormats = []string{".jpeg", ".jpg", ".png", ".gif", ".webp"}

var ImageAllowedMIMETypes = []string{MIMEImageJPEG, MIMEImageJPG, MIMEImagePNG, MIMEImageGIF, MIMEImageWEBP}

var WorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	QueryParamLimit        = "limit"
	QueryParamPatientEmail = "patientEmail"
	QueryParamStatus       = "status"
	URLParamID             = "id"
)

const (
	MetricsNamespace = "doctor_appointment"
)
