package controllers

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// buildUsecaseErrorResponse maps an expired request context to a timeout
// before rendering err.
func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, ctx context.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

const defaultRequestTimeout = 10 * time.Second

// requestTimeout bounds each usecase call, falling back to
// defaultRequestTimeout when nothing positive is configured.
func requestTimeout(internalConfig *config.InternalConfig) time.Duration {
	if internalConfig == nil || internalConfig.App.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
}

func readIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, constvars.URLParamID))
	if !primitive.IsValidObjectID(id) {
		return "", exceptions.ErrURLParamIDValidation(nil, constvars.URLParamID)
	}
	return id, nil
}

func isMultipartRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	return err == nil && mediaType == constvars.MIMEMultipartForm
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// optionalFormValue returns nil when the multipart form has no key.
func optionalFormValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

// decodeJSONFormField decodes a form field carrying a JSON document. It
// reports false when the field is absent.
func decodeJSONFormField(r *http.Request, key string, dst interface{}) (bool, error) {
	raw := optionalFormValue(r, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(*raw), dst); err != nil {
		return false, exceptions.ErrInvalidFormat(err, key)
	}
	return true, nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
