package appointments

import "doctor-appointment-service/internal/pkg/constvars"

var allowedTransitions = map[string][]string{
	constvars.AppointmentStatusPending: {
		constvars.AppointmentStatusConfirmed,
		constvars.AppointmentStatusCancelled,
	},
	constvars.AppointmentStatusConfirmed: {
		constvars.AppointmentStatusCancelled,
		constvars.AppointmentStatusCompleted,
	},
}

// CanTransition reports whether an appointment may move from one status to
// another. Keeping the current status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
