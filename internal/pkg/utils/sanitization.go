package utils

import (
	"doctor-appointment-service/internal/pkg/dto/requests"
	"strings"
)

func trimPointer(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}

func SanitizeCreateAppointmentRequest(request *requests.CreateAppointment) {
	request.DoctorID = strings.TrimSpace(request.DoctorID)
	request.PatientName = strings.TrimSpace(request.PatientName)
	request.PatientEmail = strings.ToLower(strings.TrimSpace(request.PatientEmail))
	request.Date = strings.TrimSpace(request.Date)
	request.Time = strings.TrimSpace(request.Time)
	request.Status = strings.ToLower(strings.TrimSpace(request.Status))
}

func SanitizeUpdateAppointmentRequest(request *requests.UpdateAppointment) {
	trimPointer(request.PatientName)
	trimPointer(request.Date)
	trimPointer(request.Time)
	if request.PatientEmail != nil {
		*request.PatientEmail = strings.ToLower(strings.TrimSpace(*request.PatientEmail))
	}
	if request.Status != nil {
		*request.Status = strings.ToLower(strings.TrimSpace(*request.Status))
	}
}

func SanitizeAppointmentFilter(filter *requests.AppointmentFilter) {
	filter.PatientEmail = strings.ToLower(strings.TrimSpace(filter.PatientEmail))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
}

func SanitizeCreateDoctorRequest(request *requests.CreateDoctor) {
	request.Name = strings.TrimSpace(request.Name)
	request.Speciality = strings.TrimSpace(request.Speciality)
	request.Description = strings.TrimSpace(request.Description)
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.Phone = strings.TrimSpace(request.Phone)
	request.Address = strings.TrimSpace(request.Address)
}

func SanitizeUpdateDoctorRequest(request *requests.UpdateDoctor) {
	trimPointer(request.Name)
	trimPointer(request.Speciality)
	trimPointer(request.Description)
	trimPointer(request.Phone)
	trimPointer(request.Address)
	if request.Email != nil {
		*request.Email = strings.ToLower(strings.TrimSpace(*request.Email))
	}
}

func SanitizeCreateBlogRequest(request *requests.CreateBlog) {
	request.Title = strings.TrimSpace(request.Title)
	request.ShortDescription = strings.TrimSpace(request.ShortDescription)
	request.Author = strings.TrimSpace(request.Author)
}

func SanitizeUpdateBlogRequest(request *requests.UpdateBlog) {
	trimPointer(request.Title)
	trimPointer(request.ShortDescription)
	trimPointer(request.Author)
}
