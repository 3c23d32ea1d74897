package responses

import "time"

type Appointment struct {
	ID           string         `json:"_id"`
	Doctor       *DoctorSummary `json:"doctor"`
	PatientName  string         `json:"patientName"`
	PatientEmail string         `json:"patientEmail"`
	Date         string         `json:"date"`
	Time         string         `json:"time"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
