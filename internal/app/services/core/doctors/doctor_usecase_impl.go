package doctors

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/metrics"
	"doctor-appointment-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	RedisRepository  contracts.RedisRepository
	MediaStorage     contracts.MediaStorage
	InternalConfig   *config.InternalConfig
	Metrics          *metrics.Metrics
	Log              *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorMongoRepository contracts.DoctorRepository,
	redisRepository contracts.RedisRepository,
	mediaStorage contracts.MediaStorage,
	internalConfig *config.InternalConfig,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository: doctorMongoRepository,
			RedisRepository:  redisRepository,
			MediaStorage:     mediaStorage,
			InternalConfig:   internalConfig,
			Metrics:          appMetrics,
			Log:              logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context, filter *requests.DoctorFilter) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingLimitKey, filter.Limit),
	)

	doctors, err := uc.findAllCached(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if filter.Limit > 0 && filter.Limit < len(doctors) {
		doctors = doctors[:filter.Limit]
	}

	response := make([]responses.Doctor, len(doctors))
	for i, eachDoctor := range doctors {
		response[i] = eachDoctor.ConvertIntoResponse()
	}

	uc.Log.Info("doctorUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDoctorCountKey, len(response)),
	)
	return response, nil
}

// findAllCached serves the full doctor list from Redis, filling it from Mongo
// on a miss. Cache failures fall through to Mongo.
func (uc *doctorUsecase) findAllCached(ctx context.Context, requestID string) ([]models.Doctor, error) {
	doctorRedisData, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyDoctorList)
	if err != nil {
		uc.Log.Warn("doctorUsecase.findAllCached error retrieving doctor data from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if doctorRedisData != "" {
		var doctors []models.Doctor
		err = json.Unmarshal([]byte(doctorRedisData), &doctors)
		if err == nil {
			uc.Metrics.ObserveDoctorCache(true)
			return doctors, nil
		}
		uc.Log.Warn("doctorUsecase.findAllCached error unmarshaling Redis data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	uc.Metrics.ObserveDoctorCache(false)

	doctors, err := uc.DoctorRepository.FindAll(ctx, 0)
	if err != nil {
		uc.Log.Error("doctorUsecase.findAllCached error fetching doctors from repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.App.DoctorCacheTTLInSeconds) * time.Second
	err = uc.RedisRepository.Set(ctx, constvars.RedisKeyDoctorList, doctors, ttl)
	if err != nil {
		uc.Log.Warn("doctorUsecase.findAllCached error caching doctors in Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return doctors, nil
}

func (uc *doctorUsecase) FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.findExisting(ctx, requestID, doctorID)
	if err != nil {
		return nil, err
	}

	response := doctor.ConvertIntoResponse()
	return &response, nil
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.validateImage(request.Image); err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		Name:         request.Name,
		Speciality:   request.Speciality,
		Description:  request.Description,
		Email:        request.Email,
		Phone:        request.Phone,
		Address:      request.Address,
		Experience:   convertExperience(request.Experience),
		WorkingHours: convertWorkingHours(request.WorkingHours),
	}

	if request.Image != nil {
		imageURL, err := uc.MediaStorage.UploadImage(ctx, constvars.ImageFolderDoctors, request.Image)
		if err != nil {
			uc.Log.Error("doctorUsecase.CreateDoctor error uploading image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		doctor.ImageURL = imageURL
	}

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.cleanupImage(ctx, requestID, doctor.ImageURL)
		return nil, err
	}

	uc.invalidateCache(ctx, requestID)

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	response := doctor.ConvertIntoResponse()
	return &response, nil
}

func (uc *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if err := uc.validateImage(request.Image); err != nil {
		return nil, err
	}

	doctor, err := uc.findExisting(ctx, requestID, doctorID)
	if err != nil {
		return nil, err
	}

	applyDoctorUpdate(doctor, request)

	previousImageURL := doctor.ImageURL
	if request.Image != nil {
		imageURL, err := uc.MediaStorage.UploadImage(ctx, constvars.ImageFolderDoctors, request.Image)
		if err != nil {
			uc.Log.Error("doctorUsecase.UpdateDoctor error uploading image",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		doctor.ImageURL = imageURL
	}

	err = uc.DoctorRepository.UpdateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateDoctor error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if request.Image != nil {
			uc.cleanupImage(ctx, requestID, doctor.ImageURL)
		}
		return nil, err
	}

	if request.Image != nil {
		uc.cleanupImage(ctx, requestID, previousImageURL)
	}
	uc.invalidateCache(ctx, requestID)

	uc.Log.Info("doctorUsecase.UpdateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	response := doctor.ConvertIntoResponse()
	return &response, nil
}

func (uc *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.DeleteDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.findExisting(ctx, requestID, doctorID)
	if err != nil {
		return err
	}

	err = uc.DoctorRepository.DeleteDoctor(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.DeleteDoctor error deleting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.cleanupImage(ctx, requestID, doctor.ImageURL)
	uc.invalidateCache(ctx, requestID)

	uc.Log.Info("doctorUsecase.DeleteDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return nil
}

func (uc *doctorUsecase) findExisting(ctx context.Context, requestID, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.findExisting error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil, doctorID)
	}
	return doctor, nil
}

func (uc *doctorUsecase) validateImage(image *requests.ImageUpload) error {
	err := utils.ValidateImage(image, uc.InternalConfig.Minio.ImageMaxUploadSizeInMB)
	if err == utils.ErrImageTooLarge {
		return exceptions.ErrImageTooLarge(err)
	}
	if err != nil {
		return exceptions.ErrImageValidation(err)
	}
	return nil
}

// cleanupImage only logs and counts failures.
func (uc *doctorUsecase) cleanupImage(ctx context.Context, requestID, imageURL string) {
	if imageURL == "" {
		return
	}
	err := uc.MediaStorage.DeleteImage(ctx, imageURL)
	if err != nil {
		uc.Metrics.ObserveMediaCleanupFailure(constvars.ResourceDoctors)
		uc.Log.Warn("doctorUsecase.cleanupImage error deleting image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, imageURL),
			zap.Error(err),
		)
	}
}

func (uc *doctorUsecase) invalidateCache(ctx context.Context, requestID string) {
	err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyDoctorList)
	if err != nil {
		uc.Log.Warn("doctorUsecase.invalidateCache error deleting doctor list cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func applyDoctorUpdate(doctor *models.Doctor, request *requests.UpdateDoctor) {
	if request.Name != nil {
		doctor.Name = *request.Name
	}
	if request.Speciality != nil {
		doctor.Speciality = *request.Speciality
	}
	if request.Description != nil {
		doctor.Description = *request.Description
	}
	if request.Email != nil {
		doctor.Email = *request.Email
	}
	if request.Phone != nil {
		doctor.Phone = *request.Phone
	}
	if request.Address != nil {
		doctor.Address = *request.Address
	}
	if request.Experience != nil {
		doctor.Experience = convertExperience(request.Experience)
	}
	if request.WorkingHours != nil {
		doctor.WorkingHours = convertWorkingHours(request.WorkingHours)
	}
}

func convertExperience(experience *requests.DoctorExperience) *models.DoctorExperience {
	if experience == nil {
		return nil
	}
	return &models.DoctorExperience{
		Years:           experience.Years,
		PatientsServed:  experience.PatientsServed,
		Specializations: experience.Specializations,
	}
}

func convertWorkingHours(workingHours []requests.WorkingHour) []models.WorkingHour {
	result := make([]models.WorkingHour, len(workingHours))
	for i, workingHour := range workingHours {
		isAvailable := true
		if workingHour.IsAvailable != nil {
			isAvailable = *workingHour.IsAvailable
		}
		result[i] = models.WorkingHour{
			Day:         workingHour.Day,
			StartTime:   workingHour.StartTime,
			EndTime:     workingHour.EndTime,
			IsAvailable: isAvailable,
		}
	}
	return result
}
