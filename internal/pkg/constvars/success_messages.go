package constvars

const (
	ResponseUnknown = "unknown"

	GetDoctorSuccessMessage     = "get doctors successfully"
	GetDoctorByIDSuccessMessage = "get doctor successfully"
	CreateDoctorSuccessMessage  = "doctor created successfully"
	UpdateDoctorSuccessMessage  = "doctor updated successfully"
	DeleteDoctorSuccessMessage  = "Doctor deleted successfully"

	GetBlogSuccessMessage     = "get blogs successfully"
	GetBlogByIDSuccessMessage = "get blog successfully"
	CreateBlogSuccessMessage  = "blog created successfully"
	UpdateBlogSuccessMessage  = "blog updated successfully"
	DeleteBlogSuccessMessage  = "Blog deleted successfully"

	GetAppointmentSuccessMessage     = "get appointments successfully"
	GetAppointmentByIDSuccessMessage = "get appointment successfully"
	CreateAppointmentSuccessMessage  = "appointment created successfully"
	UpdateAppointmentSuccessMessage  = "appointment updated successfully"
	DeleteAppointmentSuccessMessage  = "Appointment deleted successfully"

	HealthCheckSuccessMessage = "service is healthy"
)
