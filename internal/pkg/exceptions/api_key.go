package exceptions

import "doctor-appointment-service/internal/pkg/constvars"

func ErrInvalidAPIKey(err error) *CustomError {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidAPIKey, constvars.ErrDevInvalidAPIKey)
}

func ErrAPIKeyRequired(err error) *CustomError {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientAPIKeyRequired, constvars.ErrDevAPIKeyRequired)
}
