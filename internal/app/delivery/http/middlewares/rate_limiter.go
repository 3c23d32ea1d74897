package middlewares

import (
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP and blocks an IP for
// blockTime once its bucket runs dry. Clients idle for longer than per are
// forgotten on the next sweep.
type RateLimiter struct {
	clients   map[string]*rateClient
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	lastSweep time.Time
	log       *zap.Logger
	now       func() time.Time
}

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requests int, per, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*rateClient),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		log:       logger,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if !r.allow(ip) {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil, ip))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
	}

	client, exists := r.clients[ip]
	if !exists {
		// refill one token per per/requests, bursting up to requests
		client = &rateClient{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
		r.clients[ip] = client
	}
	client.lastSeen = now

	if !client.limiter.AllowN(now, 1) {
		r.blocked[ip] = now.Add(r.blockTime)
		return false
	}
	return true
}

// sweep runs at most once per window and drops clients whose bucket has had
// a full window to refill, along with expired blocks. Callers hold r.mu.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.per {
		return
	}
	r.lastSweep = now

	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
	for ip, client := range r.clients {
		if _, stillBlocked := r.blocked[ip]; stillBlocked {
			continue
		}
		if now.Sub(client.lastSeen) > r.per {
			delete(r.clients, ip)
		}
	}
}
