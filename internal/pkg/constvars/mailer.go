package constvars

const (
	EmailKindAppointmentBooked        = "appointment_booked"
	EmailKindAppointmentStatusChanged = "appointment_status_changed"

	EmailSubjectAppointmentBooked        = "Your appointment request has been received"
	EmailSubjectAppointmentStatusChanged = "Your appointment is now %s"

	EmailAppointmentBookedHTMLFormat = `<p>Hello %s,</p><p>Your appointment with %s on %s at %s has been received and is currently <b>%s</b>.</p>`
	EmailAppointmentStatusHTMLFormat = `<p>Hello %s,</p><p>Your appointment with %s on %s at %s is now <b>%s</b>.</p>`
)

const (
	RabbitMQHeaderMessageType     = "message_type"
	RabbitMQHeaderRequeueStrategy = "requeue_strategy"
	RabbitMQMessageTypeJSON       = "JSON"
	RabbitMQRequeueStrategyDrop   = "DROP"
)
