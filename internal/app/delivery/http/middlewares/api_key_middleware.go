package middlewares

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireAdminAPIKey guards write routes with the x-api-key header, checked
// against the configured bcrypt hash. An empty hash disables the guard.
func (m *Middlewares) RequireAdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := m.InternalConfig.App.AdminAPIKeyHash
		if hash == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}

		if !utils.CheckAPIKeyHash(apiKey, hash) {
			m.Log.Warn("Middlewares.RequireAdminAPIKey invalid api key",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingMethodKey, r.Method),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_API_KEY_AUTH, true)

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingUserAgentKey, r.UserAgent()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
