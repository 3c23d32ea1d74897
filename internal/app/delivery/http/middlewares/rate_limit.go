package middlewares

import (
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit applies the per-IP request budget to every route.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, ip))
		}),
	)
}

// BookingRateLimit guards appointment creation with a stricter per-minute
// budget and a temporary block.
func (m *Middlewares) BookingRateLimit() func(next http.Handler) http.Handler {
	requests := m.InternalConfig.App.BookingMaxRequestsPerMinute
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	blockTime := time.Duration(m.InternalConfig.App.BookingBlockTimeInMinutes) * time.Minute
	return NewRateLimiter(requests, time.Minute, blockTime, m.Log).Limit
}
