package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentRepository interface {
	EnsureIndexes(ctx context.Context) error
	FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// FindActiveBySlot ignores the appointment with excludeID, if any
	FindActiveBySlot(ctx context.Context, slot models.Slot, excludeID string) (*models.Appointment, error)
	FindConfirmedUpTo(ctx context.Context, date, afterID string, limit int64) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	// MarkCompleted moves the given confirmed appointments to completed and
	// returns how many changed
	MarkCompleted(ctx context.Context, appointmentIDs []string) (int64, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
	FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]responses.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]responses.Appointment, error)
	FindMine(ctx context.Context) ([]responses.Appointment, error)
	CompletePastAppointments(ctx context.Context, now time.Time) (int64, error)
}
