package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
)

// maxTrackedClients bounds the limiter table; the least recently seen
// client loses its bucket first.
const maxTrackedClients = 10_000

type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: limiters,
	}
}

func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters.Add(ip, limiter)
	}
	return limiter
}

// Limit rejects requests from a client IP that exhausted its token bucket.
// A non-positive rate disables limiting.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if l.rps <= 0 || ctx.Request.Method == "OPTIONS" {
			ctx.Next()
			return
		}
		if !l.getLimiter(ctx.ClientIP()).Allow() {
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}
		ctx.Next()
	}
}
