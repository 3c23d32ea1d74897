package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"time"
)

// ParseAppointmentTime combines an appointment's date and clock strings into
// an instant in loc.
func ParseAppointmentTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.AppointmentDateLayout+" "+constvars.AppointmentTimeLayout, date+" "+clock, loc)
}
