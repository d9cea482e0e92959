package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/goldpulse/internal/domain/dto"
)

// client is a per-IP token bucket and the last time it was used.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Default bucket: 60 requests per minute, burst of 10.
var (
	defaultRate  = rate.Every(time.Second)
	defaultBurst = 10
	idleTTL      = 5 * time.Minute
)

type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	lastGC  time.Time
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > idleTTL {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastGC = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimiter limits requests per client IP with a token bucket of rps
// tokens per second and the given burst. rps <= 0 or burst <= 0 fall back to
// one request per second with a burst of 10.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(rps float64, burst int) gin.HandlerFunc {
	l := &ipLimiter{
		clients: make(map[string]*client),
		rps:     defaultRate,
		burst:   defaultBurst,
		lastGC:  time.Now(),
	}
	if rps > 0 {
		l.rps = rate.Limit(rps)
	}
	if burst > 0 {
		l.burst = burst
	}

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
