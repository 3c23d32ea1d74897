package appointments

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{constvars.AppointmentStatusPending, constvars.AppointmentStatusConfirmed, true},
		{constvars.AppointmentStatusPending, constvars.AppointmentStatusCancelled, true},
		{constvars.AppointmentStatusPending, constvars.AppointmentStatusCompleted, false},
		{constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCompleted, true},
		{constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCancelled, true},
		{constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusPending, false},
		{constvars.AppointmentStatusCancelled, constvars.AppointmentStatusConfirmed, false},
		{constvars.AppointmentStatusCompleted, constvars.AppointmentStatusCancelled, false},
		{constvars.AppointmentStatusCancelled, constvars.AppointmentStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
