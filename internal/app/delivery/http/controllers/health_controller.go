package controllers

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	healthStatusUp   = "up"
	healthStatusDown = "down"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Log    *zap.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *zap.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Log:    logger,
		Checks: checks,
	}
}

func (ctrl *HealthController) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(ctrl.Checks))
	for name := range ctrl.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := responses.HealthCheck{
		Status:   healthStatusUp,
		Services: make(map[string]string, len(names)),
	}
	statusCode := constvars.StatusOK
	for _, name := range names {
		if err := ctrl.Checks[name](ctx); err != nil {
			ctrl.Log.Warn("HealthController.CheckHealth dependency unavailable",
				zap.String("service", name),
				zap.Error(err),
			)
			response.Services[name] = healthStatusDown
			response.Status = healthStatusDown
			statusCode = constvars.StatusServiceUnavailable
			continue
		}
		response.Services[name] = healthStatusUp
	}

	utils.BuildSuccessResponse(w, statusCode, constvars.HealthCheckSuccessMessage, response)
}
