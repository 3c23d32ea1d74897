package requests

type CreateAppointment struct {
	DoctorID     string `json:"doctorId" validate:"required,mongodb"`
	PatientName  string `json:"patientName" validate:"required"`
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	Date         string `json:"date" validate:"required,calendar_date"`
	Time         string `json:"time" validate:"required,clock_time"`
	Status       string `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

// UpdateAppointment is a partial update; nil fields are left untouched.
type UpdateAppointment struct {
	PatientName  *string `json:"patientName" validate:"omitempty,min=1"`
	PatientEmail *string `json:"patientEmail" validate:"omitempty,email"`
	Date         *string `json:"date" validate:"omitempty,calendar_date"`
	Time         *string `json:"time" validate:"omitempty,clock_time"`
	Status       *string `json:"status" validate:"omitempty,appointment_status"`
}

func (r *UpdateAppointment) IsEmpty() bool {
	return r.PatientName == nil && r.PatientEmail == nil &&
		r.Date == nil && r.Time == nil && r.Status == nil
}

func (r *UpdateAppointment) ChangesSlot() bool {
	return r.Date != nil || r.Time != nil
}

type AppointmentFilter struct {
	PatientEmail string `json:"patientEmail" validate:"omitempty,email"`
	Status       string `json:"status" validate:"omitempty,appointment_status"`
}
