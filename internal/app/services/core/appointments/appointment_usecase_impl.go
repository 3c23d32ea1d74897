package appointments

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

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultSlotLockTTL = 10 * time.Second

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	LockerService         contracts.LockerService
	MailerService         contracts.MailerService
	InternalConfig        *config.InternalConfig
	Metrics               *metrics.Metrics
	Location              *time.Location
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentMongoRepository contracts.AppointmentRepository,
	doctorMongoRepository contracts.DoctorRepository,
	lockerService contracts.LockerService,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = newAppointmentUsecase(
			appointmentMongoRepository,
			doctorMongoRepository,
			lockerService,
			mailerService,
			internalConfig,
			appMetrics,
			logger,
		)
	})
	return appointmentUsecaseInstance
}

func newAppointmentUsecase(
	appointmentMongoRepository contracts.AppointmentRepository,
	doctorMongoRepository contracts.DoctorRepository,
	lockerService contracts.LockerService,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	appMetrics *metrics.Metrics,
	logger *zap.Logger,
) *appointmentUsecase {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logger.Warn("appointmentUsecase unknown timezone, falling back to UTC",
			zap.String("timezone", internalConfig.App.Timezone),
			zap.Error(err),
		)
		location = time.UTC
	}

	return &appointmentUsecase{
		AppointmentRepository: appointmentMongoRepository,
		DoctorRepository:      doctorMongoRepository,
		LockerService:         lockerService,
		MailerService:         mailerService,
		InternalConfig:        internalConfig,
		Metrics:               appMetrics,
		Location:              location,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Metrics.ObserveBooking(metrics.BookingOutcomeFailed)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil, request.DoctorID)
	}

	status := request.Status
	if status == "" {
		status = constvars.AppointmentStatusPending
	}

	appointment := &models.Appointment{
		DoctorID:     doctor.ID,
		PatientName:  request.PatientName,
		PatientEmail: request.PatientEmail,
		Date:         request.Date,
		Time:         request.Time,
		Status:       status,
		Active:       true,
	}
	slot := appointment.Slot()

	acquired, err := uc.LockerService.WithLock(ctx, slot.LockKey(), uc.slotLockTTL(), func(lockCtx context.Context) error {
		if err := uc.ensureSlotFree(lockCtx, slot, ""); err != nil {
			return err
		}
		_, err := uc.AppointmentRepository.CreateAppointment(lockCtx, appointment)
		return err
	})
	if err == nil && !acquired {
		err = exceptions.ErrAppointmentSlotBeingBooked(nil, slot.String())
	}
	if err != nil {
		uc.observeBookingFailure(acquired, err)
		uc.Log.Error("appointmentUsecase.CreateAppointment error booking slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKey, slot.String()),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Metrics.ObserveBooking(metrics.BookingOutcomeCreated)

	uc.notify(ctx, requestID, utils.BuildAppointmentBookedEmailPayload(
		uc.InternalConfig.Mailer.EmailSender,
		appointmentNotice(appointment, doctor.Name),
	))

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingSlotKey, slot.String()),
	)
	response := appointment.ConvertIntoResponse(doctor)
	return &response, nil
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if request.IsEmpty() {
		return nil, exceptions.ErrNoFieldsToUpdate(nil)
	}

	appointment, err := uc.findExisting(ctx, requestID, appointmentID)
	if err != nil {
		return nil, err
	}

	previousStatus := appointment.Status
	previousSlot := appointment.Slot()

	if request.Status != nil {
		if !CanTransition(previousStatus, *request.Status) {
			return nil, exceptions.ErrInvalidStatusTransition(nil, previousStatus, *request.Status)
		}
		appointment.Status = *request.Status
	}
	if request.PatientName != nil {
		appointment.PatientName = *request.PatientName
	}
	if request.PatientEmail != nil {
		appointment.PatientEmail = *request.PatientEmail
	}
	if request.Date != nil {
		appointment.Date = *request.Date
	}
	if request.Time != nil {
		appointment.Time = *request.Time
	}
	appointment.Active = models.IsActiveStatus(appointment.Status)

	slot := appointment.Slot()
	if request.ChangesSlot() && slot != previousSlot && appointment.Active {
		acquired, err := uc.LockerService.WithLock(ctx, slot.LockKey(), uc.slotLockTTL(), func(lockCtx context.Context) error {
			if err := uc.ensureSlotFree(lockCtx, slot, appointmentID); err != nil {
				return err
			}
			return uc.AppointmentRepository.UpdateAppointment(lockCtx, appointment)
		})
		if err == nil && !acquired {
			err = exceptions.ErrAppointmentSlotBeingBooked(nil, slot.String())
		}
		if err != nil {
			uc.Log.Error("appointmentUsecase.UpdateAppointment error rescheduling appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotKey, slot.String()),
				zap.Error(err),
			)
			return nil, err
		}
	} else {
		err = uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
		if err != nil {
			uc.Log.Error("appointmentUsecase.UpdateAppointment error updating appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID.Hex())
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if appointment.Status != previousStatus {
		uc.Metrics.ObserveTransition(previousStatus, appointment.Status)
		doctorName := ""
		if doctor != nil {
			doctorName = doctor.Name
		}
		uc.notify(ctx, requestID, utils.BuildAppointmentStatusEmailPayload(
			uc.InternalConfig.Mailer.EmailSender,
			appointmentNotice(appointment, doctorName),
		))
	}

	uc.Log.Info("appointmentUsecase.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
	)
	response := appointment.ConvertIntoResponse(doctor)
	return &response, nil
}

func (uc *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	_, err := uc.findExisting(ctx, requestID, appointmentID)
	if err != nil {
		return err
	}

	err = uc.AppointmentRepository.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.DeleteAppointment error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("appointmentUsecase.DeleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointments, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.populate(ctx, requestID, appointments)
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findExisting(ctx, requestID, appointmentID)
	if err != nil {
		return nil, err
	}

	populated, err := uc.populate(ctx, requestID, []models.Appointment{*appointment})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

func (uc *appointmentUsecase) FindByDoctorID(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByDoctorID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointments, err := uc.AppointmentRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByDoctorID error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.populate(ctx, requestID, appointments)
}

func (uc *appointmentUsecase) FindMine(ctx context.Context) ([]responses.Appointment, error) {
	identity, ok := utils.GetIdentity(ctx)
	if !ok {
		return nil, exceptions.ErrIdentityMissing(nil)
	}
	return uc.FindAll(ctx, &requests.AppointmentFilter{PatientEmail: identity.Email})
}

// CompletePastAppointments marks every confirmed appointment whose start has
// passed at now as completed. Candidates are paged by id until every
// confirmed appointment dated up to today has been visited.
func (uc *appointmentUsecase) CompletePastAppointments(ctx context.Context, now time.Time) (int64, error) {
	localNow := now.In(uc.Location)
	today := localNow.Format(constvars.AppointmentDateLayout)
	batchSize := int64(uc.InternalConfig.Appointment.CompletionBatchSize)

	var total int64
	afterID := ""
	for {
		candidates, err := uc.AppointmentRepository.FindConfirmedUpTo(ctx, today, afterID, batchSize)
		if err != nil {
			uc.Metrics.ObserveCompletion(total, err)
			return total, err
		}
		if len(candidates) == 0 {
			break
		}

		dueIDs := make([]string, 0, len(candidates))
		for _, candidate := range candidates {
			startsAt, err := utils.ParseAppointmentTime(candidate.Date, candidate.Time, uc.Location)
			if err != nil {
				uc.Log.Warn("appointmentUsecase.CompletePastAppointments skipping unparsable appointment time",
					zap.String(constvars.LoggingAppointmentIDKey, candidate.ID.Hex()),
					zap.Error(err),
				)
				continue
			}
			if !startsAt.After(localNow) {
				dueIDs = append(dueIDs, candidate.ID.Hex())
			}
		}

		completed, err := uc.AppointmentRepository.MarkCompleted(ctx, dueIDs)
		total += completed
		if err != nil {
			uc.Metrics.ObserveCompletion(total, err)
			return total, err
		}

		if batchSize <= 0 || int64(len(candidates)) < batchSize {
			break
		}
		afterID = candidates[len(candidates)-1].ID.Hex()
	}

	uc.Metrics.ObserveCompletion(total, nil)
	return total, nil
}

func (uc *appointmentUsecase) findExisting(ctx context.Context, requestID, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.findExisting error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil, appointmentID)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ensureSlotFree(ctx context.Context, slot models.Slot, excludeID string) error {
	existing, err := uc.AppointmentRepository.FindActiveBySlot(ctx, slot, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return exceptions.ErrAppointmentSlotAlreadyBooked(nil, slot.String())
	}
	return nil
}

// populate replaces doctor ids with a doctor summary. Appointments of a
// deleted doctor keep a nil doctor.
func (uc *appointmentUsecase) populate(ctx context.Context, requestID string, appointments []models.Appointment) ([]responses.Appointment, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(appointments))
	doctorIDs := make([]string, 0, len(appointments))
	for _, eachAppointment := range appointments {
		if _, ok := seen[eachAppointment.DoctorID]; ok {
			continue
		}
		seen[eachAppointment.DoctorID] = struct{}{}
		doctorIDs = append(doctorIDs, eachAppointment.DoctorID.Hex())
	}

	doctorsByID := make(map[primitive.ObjectID]*models.Doctor, len(doctorIDs))
	if len(doctorIDs) > 0 {
		doctors, err := uc.DoctorRepository.FindByIDs(ctx, doctorIDs)
		if err != nil {
			uc.Log.Error("appointmentUsecase.populate error fetching doctors",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		for i := range doctors {
			doctorsByID[doctors[i].ID] = &doctors[i]
		}
	}

	response := make([]responses.Appointment, len(appointments))
	for i, eachAppointment := range appointments {
		response[i] = eachAppointment.ConvertIntoResponse(doctorsByID[eachAppointment.DoctorID])
	}

	uc.Log.Info("appointmentUsecase.populate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCount, len(response)),
	)
	return response, nil
}

func appointmentNotice(appointment *models.Appointment, doctorName string) requests.AppointmentNotice {
	return requests.AppointmentNotice{
		AppointmentID: appointment.ID.Hex(),
		PatientName:   appointment.PatientName,
		PatientEmail:  appointment.PatientEmail,
		DoctorName:    doctorName,
		Date:          appointment.Date,
		Time:          appointment.Time,
		Status:        appointment.Status,
	}
}

func (uc *appointmentUsecase) notify(ctx context.Context, requestID string, payload *requests.EmailPayload) {
	if uc.MailerService == nil {
		return
	}
	err := uc.MailerService.SendEmail(ctx, payload)
	uc.Metrics.ObserveNotification(err)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.notify error publishing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) observeBookingFailure(acquired bool, err error) {
	switch {
	case !acquired && isSlotConflict(err):
		uc.Metrics.ObserveBooking(metrics.BookingOutcomeContended)
	case isSlotConflict(err):
		uc.Metrics.ObserveBooking(metrics.BookingOutcomeConflict)
	default:
		uc.Metrics.ObserveBooking(metrics.BookingOutcomeFailed)
	}
}

func (uc *appointmentUsecase) slotLockTTL() time.Duration {
	if uc.InternalConfig.Appointment.SlotLockTTLInSeconds <= 0 {
		return defaultSlotLockTTL
	}
	return time.Duration(uc.InternalConfig.Appointment.SlotLockTTLInSeconds) * time.Second
}

func isSlotConflict(err error) bool {
	customErr, ok := err.(*exceptions.CustomError)
	return ok && customErr.ClientMessage == constvars.ErrClientSlotAlreadyBooked
}
