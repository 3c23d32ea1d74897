package middlewares

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Identity reads an optional bearer token issued by the identity provider.
// Requests without a token continue anonymously; a bad token is rejected.
func (m *Middlewares) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r.Header.Get(constvars.HeaderAuthorization))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := utils.ParseIdentityToken(token, m.InternalConfig.Identity.JWTSecret)
		if err != nil {
			m.Log.Warn("Middlewares.Identity rejected token",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

func (m *Middlewares) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentity(r.Context()); !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrIdentityMissing(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
