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
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log            *zap.Logger
	DoctorUsecase  contracts.DoctorUsecase
	RequestTimeout time.Duration
}

var (
	doctorControllerInstance *DoctorController
	onceDoctorController     sync.Once
)

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, internalConfig *config.InternalConfig) *DoctorController {
	onceDoctorController.Do(func() {
		instance := &DoctorController{
			Log:            logger,
			DoctorUsecase:  doctorUsecase,
			RequestTimeout: requestTimeout(internalConfig),
		}
		doctorControllerInstance = instance
	})
	return doctorControllerInstance
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	// a missing or malformed limit means no limit
	filter := new(requests.DoctorFilter)
	if limit, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamLimit)); err == nil && limit > 0 {
		filter.Limit = limit
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindAll(ctx, filter)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorSuccessMessage, response)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindByID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorByIDSuccessMessage, response)
}

func (ctrl *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request, err := ctrl.parseCreateDoctorRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor error parsing request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateDoctorRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.CreateDoctor(ctx, request)
	if err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	ctrl.Log.Info("DoctorController.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateDoctorSuccessMessage, response)
}

func (ctrl *DoctorController) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request, err := ctrl.parseUpdateDoctorRequest(r)
	if err != nil {
		ctrl.Log.Error("DoctorController.UpdateDoctor error parsing request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeUpdateDoctorRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DoctorController.UpdateDoctor validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.DoctorUsecase.UpdateDoctor(ctx, doctorID, request)
	if err != nil {
		ctrl.Log.Error("DoctorController.UpdateDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDoctorSuccessMessage, response)
}

func (ctrl *DoctorController) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.DeleteDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	err = ctrl.DoctorUsecase.DeleteDoctor(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.DeleteDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteDoctorSuccessMessage, nil)
}

// parseCreateDoctorRequest accepts multipart forms, where experience and
// workingHours arrive as JSON strings, as well as plain JSON bodies.
func (ctrl *DoctorController) parseCreateDoctorRequest(r *http.Request) (*requests.CreateDoctor, error) {
	request := new(requests.CreateDoctor)
	if !isMultipartRequest(r) {
		return request, decodeJSONBody(r, request)
	}

	if err := r.ParseMultipartForm(constvars.MultipartMaxMemory); err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	request.Name = derefString(optionalFormValue(r, "name"))
	request.Speciality = derefString(optionalFormValue(r, "speciality"))
	request.Description = derefString(optionalFormValue(r, "description"))
	request.Email = derefString(optionalFormValue(r, "email"))
	request.Phone = derefString(optionalFormValue(r, "phone"))
	request.Address = derefString(optionalFormValue(r, "address"))

	experience := new(requests.DoctorExperience)
	found, err := decodeJSONFormField(r, constvars.DoctorFieldExperience, experience)
	if err != nil {
		return nil, err
	}
	if found {
		request.Experience = experience
	}
	if _, err := decodeJSONFormField(r, constvars.DoctorFieldWorkingHours, &request.WorkingHours); err != nil {
		return nil, err
	}

	image, err := utils.ReadImageFromForm(r, constvars.ImageFormFieldName)
	if err != nil {
		return nil, exceptions.ErrImageValidation(err)
	}
	request.Image = image
	return request, nil
}

func (ctrl *DoctorController) parseUpdateDoctorRequest(r *http.Request) (*requests.UpdateDoctor, error) {
	request := new(requests.UpdateDoctor)
	if !isMultipartRequest(r) {
		return request, decodeJSONBody(r, request)
	}

	if err := r.ParseMultipartForm(constvars.MultipartMaxMemory); err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	request.Name = optionalFormValue(r, "name")
	request.Speciality = optionalFormValue(r, "speciality")
	request.Description = optionalFormValue(r, "description")
	request.Email = optionalFormValue(r, "email")
	request.Phone = optionalFormValue(r, "phone")
	request.Address = optionalFormValue(r, "address")

	experience := new(requests.DoctorExperience)
	found, err := decodeJSONFormField(r, constvars.DoctorFieldExperience, experience)
	if err != nil {
		return nil, err
	}
	if found {
		request.Experience = experience
	}
	if _, err := decodeJSONFormField(r, constvars.DoctorFieldWorkingHours, &request.WorkingHours); err != nil {
		return nil, err
	}

	image, err := utils.ReadImageFromForm(r, constvars.ImageFormFieldName)
	if err != nil {
		return nil, exceptions.ErrImageValidation(err)
	}
	request.Image = image
	return request, nil
}
