package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate          *validator.Validate
	rePhoneNumber     = regexp.MustCompile(constvars.RegexPhoneNumber)
	reCalendarDate    = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
	reClockTime       = regexp.MustCompile(constvars.RegexTimeHHMM)
	appointmentStates = map[string]bool{
		constvars.AppointmentStatusPending:   true,
		constvars.AppointmentStatusConfirmed: true,
		constvars.AppointmentStatusCancelled: true,
		constvars.AppointmentStatusCompleted: true,
	}
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("appointment_status", validateAppointmentStatus)
	validate.RegisterValidation("working_day", validateWorkingDay)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return rePhoneNumber.MatchString(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !reCalendarDate.MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.AppointmentDateLayout, value)
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !reClockTime.MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.AppointmentTimeLayout, value)
	return err == nil
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	return appointmentStates[fl.Field().String()]
}

func validateWorkingDay(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, day := range constvars.WorkingDays {
		if value == day {
			return true
		}
	}
	return false
}
