package utils

import (
	"doctor-appointment-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeAppointmentRequests(t *testing.T) {
	t.Run("Create Request", func(t *testing.T) {
		request := &requests.CreateAppointment{
			DoctorID:     " 665f1c2e9b1d4a3f8c7e6d5b ",
			PatientName:  "  Asha Rao ",
			PatientEmail: "  ASHA@EXAMPLE.COM  ",
			Date:         " 2025-06-01",
			Time:         "09:00 ",
			Status:       " Confirmed",
		}

		SanitizeCreateAppointmentRequest(request)

		assert.Equal(t, "665f1c2e9b1d4a3f8c7e6d5b", request.DoctorID)
		assert.Equal(t, "Asha Rao", request.PatientName)
		assert.Equal(t, "asha@example.com", request.PatientEmail, "email should be lowercase and trimmed")
		assert.Equal(t, "2025-06-01", request.Date)
		assert.Equal(t, "09:00", request.Time)
		assert.Equal(t, "confirmed", request.Status)
	})

	t.Run("Update Request Leaves Nil Fields", func(t *testing.T) {
		email := " Asha@Example.com "
		request := &requests.UpdateAppointment{PatientEmail: &email}

		SanitizeUpdateAppointmentRequest(request)

		assert.Equal(t, "asha@example.com", *request.PatientEmail)
		assert.Nil(t, request.Status, "absent fields should stay absent")
		assert.Nil(t, request.Date, "absent fields should stay absent")
	})
}
