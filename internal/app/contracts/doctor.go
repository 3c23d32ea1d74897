package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type DoctorRepository interface {
	FindAll(ctx context.Context, limit int64) ([]models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByIDs(ctx context.Context, doctorIDs []string) ([]models.Doctor, error)
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
	DeleteDoctor(ctx context.Context, doctorID string) error
}

type DoctorUsecase interface {
	FindAll(ctx context.Context, filter *requests.DoctorFilter) ([]responses.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*responses.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*responses.Doctor, error)
	DeleteDoctor(ctx context.Context, doctorID string) error
}
