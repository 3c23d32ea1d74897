package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"encoding/base64"
	"fmt"
)

func BuildAppointmentBookedEmailPayload(fromEmail string, notice requests.AppointmentNotice) *requests.EmailPayload {
	htmlBody := fmt.Sprintf(constvars.EmailAppointmentBookedHTMLFormat, notice.PatientName, notice.DoctorName, notice.Date, notice.Time, notice.Status)
	return buildAppointmentEmail(constvars.EmailKindAppointmentBooked, constvars.EmailSubjectAppointmentBooked, fromEmail, notice, htmlBody)
}

func BuildAppointmentStatusEmailPayload(fromEmail string, notice requests.AppointmentNotice) *requests.EmailPayload {
	htmlBody := fmt.Sprintf(constvars.EmailAppointmentStatusHTMLFormat, notice.PatientName, notice.DoctorName, notice.Date, notice.Time, notice.Status)
	subject := fmt.Sprintf(constvars.EmailSubjectAppointmentStatusChanged, notice.Status)
	return buildAppointmentEmail(constvars.EmailKindAppointmentStatusChanged, subject, fromEmail, notice, htmlBody)
}

func buildAppointmentEmail(kind, subject, fromEmail string, notice requests.AppointmentNotice, htmlBody string) *requests.EmailPayload {
	return &requests.EmailPayload{
		Kind:          kind,
		AppointmentID: notice.AppointmentID,
		Subject:       subject,
		From:          fromEmail,
		To:            []string{notice.PatientEmail},
		HTMLBody:      base64.StdEncoding.EncodeToString([]byte(htmlBody)),
		Encoded:       true,
	}
}
