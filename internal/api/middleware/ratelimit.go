package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает частоту запросов отдельно для каждого клиента.
// Клиент определяется по X-User-ID, а при его отсутствии по IP.
// Лимитеры неактивных клиентов вытесняются из кэша.
type RateLimiter struct {
	limiters *cache.Cache
	rate     rate.Limit
	burst    int
}

// NewRateLimiter создает ограничитель: rps запросов в секунду, burst - размер всплеска
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(idleTTL, 2*idleTTL),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// Middleware возвращает http middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		// продлеваем TTL активного клиента
		rl.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	if err := rl.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		// лимитер уже создан параллельным запросом
		if v, ok := rl.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func clientKey(r *http.Request) string {
	if userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64); err == nil && userID > 0 {
		return "user:" + strconv.FormatInt(userID, 10)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
