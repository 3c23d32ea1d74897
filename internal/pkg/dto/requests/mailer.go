package requests

// AppointmentNotice carries the appointment details rendered into a patient
// notification.
type AppointmentNotice struct {
	AppointmentID string
	PatientName   string
	PatientEmail  string
	DoctorName    string
	Date          string
	Time          string
	Status        string
}

// EmailPayload is the message published to the mail queue. HTMLBody is base64
// when Encoded is set.
type EmailPayload struct {
	Kind          string   `json:"kind"`
	AppointmentID string   `json:"appointment_id,omitempty"`
	Subject       string   `json:"subject"`
	From          string   `json:"from"`
	To            []string `json:"to"`
	HTMLBody      string   `json:"html_body"`
	Encoded       bool     `json:"encoded"`
}
