package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	RequestTimeout     time.Duration
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	onceAppointmentController.Do(func() {
		instance := &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
			RequestTimeout:     requestTimeout(internalConfig),
		}
		appointmentControllerInstance = instance
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	filter := &requests.AppointmentFilter{
		PatientEmail: r.URL.Query().Get(constvars.QueryParamPatientEmail),
		Status:       r.URL.Query().Get(constvars.QueryParamStatus),
	}
	utils.SanitizeAppointmentFilter(filter)
	if err := utils.ValidateStruct(filter); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindAll(ctx, filter)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.FindMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindMine(ctx)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindMine error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointmentID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindByID(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentByIDSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByDoctorID(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.FindByDoctorID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindByDoctorID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindByDoctorID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateAppointment)
	if err := decodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateAppointmentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointmentID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateAppointment)
	if err := decodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("AppointmentController.UpdateAppointment error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeUpdateAppointmentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AppointmentController.UpdateAppointment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.UpdateAppointment(ctx, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.UpdateAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AppointmentController.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointmentID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	err = ctrl.AppointmentUsecase.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.DeleteAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAppointmentSuccessMessage, nil)
}
