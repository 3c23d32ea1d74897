package models

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment holds one booking. Active is false once the appointment is
// cancelled, which releases its slot from the unique slot index.
type Appointment struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	DoctorID     primitive.ObjectID `json:"doctor" bson:"doctor"`
	PatientName  string             `json:"patientName" bson:"patientName"`
	PatientEmail string             `json:"patientEmail" bson:"patientEmail"`
	Date         string             `json:"date" bson:"date"`
	Time         string             `json:"time" bson:"time"`
	Status       string             `json:"status" bson:"status"`
	Active       bool               `json:"-" bson:"active"`
	TimeModel    `bson:",inline"`
}

func (a Appointment) Slot() Slot {
	return Slot{DoctorID: a.DoctorID.Hex(), Date: a.Date, Time: a.Time}
}

func (a Appointment) ConvertIntoResponse(doctor *Doctor) responses.Appointment {
	response := responses.Appointment{
		ID:           a.ID.Hex(),
		PatientName:  a.PatientName,
		PatientEmail: a.PatientEmail,
		Date:         a.Date,
		Time:         a.Time,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if doctor != nil {
		response.Doctor = doctor.ConvertIntoSummary()
	}
	return response
}

// Slot is the (doctor, date, time) triple that holds at most one active
// appointment.
type Slot struct {
	DoctorID string
	Date     string
	Time     string
}

func (s Slot) String() string {
	return fmt.Sprintf("%s/%s/%s", s.DoctorID, s.Date, s.Time)
}

func (s Slot) LockKey() string {
	return fmt.Sprintf(constvars.RedisKeySlotLockFormat, s.DoctorID, s.Date, s.Time)
}

// IsActiveStatus reports whether an appointment in the given status still
// occupies its slot. Cancelled and completed appointments release it.
func IsActiveStatus(status string) bool {
	return status == constvars.AppointmentStatusPending || status == constvars.AppointmentStatusConfirmed
}
