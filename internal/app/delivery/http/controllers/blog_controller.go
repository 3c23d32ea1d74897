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

type BlogController struct {
	Log            *zap.Logger
	BlogUsecase    contracts.BlogUsecase
	RequestTimeout time.Duration
}

var (
	blogControllerInstance *BlogController
	onceBlogController     sync.Once
)

func NewBlogController(logger *zap.Logger, blogUsecase contracts.BlogUsecase, internalConfig *config.InternalConfig) *BlogController {
	onceBlogController.Do(func() {
		instance := &BlogController{
			Log:            logger,
			BlogUsecase:    blogUsecase,
			RequestTimeout: requestTimeout(internalConfig),
		}
		blogControllerInstance = instance
	})
	return blogControllerInstance
}

func (ctrl *BlogController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("BlogController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BlogUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("BlogController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBlogSuccessMessage, response)
}

func (ctrl *BlogController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("BlogController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	blogID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BlogUsecase.FindByID(ctx, blogID)
	if err != nil {
		ctrl.Log.Error("BlogController.FindByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBlogByIDSuccessMessage, response)
}

func (ctrl *BlogController) CreateBlog(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("BlogController.CreateBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateBlog)
	if isMultipartRequest(r) {
		if err := r.ParseMultipartForm(constvars.MultipartMaxMemory); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}
		request.Title = derefString(optionalFormValue(r, "title"))
		request.Content = derefString(optionalFormValue(r, "content"))
		request.ShortDescription = derefString(optionalFormValue(r, "shortDescription"))
		request.Author = derefString(optionalFormValue(r, "author"))

		image, err := utils.ReadImageFromForm(r, constvars.ImageFormFieldName)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageValidation(err))
			return
		}
		request.Image = image
	} else if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeCreateBlogRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("BlogController.CreateBlog validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BlogUsecase.CreateBlog(ctx, request)
	if err != nil {
		ctrl.Log.Error("BlogController.CreateBlog error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBlogSuccessMessage, response)
}

func (ctrl *BlogController) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("BlogController.UpdateBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	blogID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateBlog)
	if isMultipartRequest(r) {
		if err := r.ParseMultipartForm(constvars.MultipartMaxMemory); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}
		request.Title = optionalFormValue(r, "title")
		request.Content = optionalFormValue(r, "content")
		request.ShortDescription = optionalFormValue(r, "shortDescription")
		request.Author = optionalFormValue(r, "author")

		image, err := utils.ReadImageFromForm(r, constvars.ImageFormFieldName)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageValidation(err))
			return
		}
		request.Image = image
	} else if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeUpdateBlogRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("BlogController.UpdateBlog validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BlogUsecase.UpdateBlog(ctx, blogID, request)
	if err != nil {
		ctrl.Log.Error("BlogController.UpdateBlog error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateBlogSuccessMessage, response)
}

func (ctrl *BlogController) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("BlogController.DeleteBlog called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	blogID, err := readIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	err = ctrl.BlogUsecase.DeleteBlog(ctx, blogID)
	if err != nil {
		ctrl.Log.Error("BlogController.DeleteBlog error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, ctx, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteBlogSuccessMessage, nil)
}
