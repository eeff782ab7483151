package middleware

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"midas/internal/ratelimit"
)

// RateGate creates a Gin middleware that rejects a request with 429 when the
// limiter denies the given key, attaching a Retry-After hint in seconds.
//
// The limiter is injected so tests can substitute a deterministic fake
// instead of relying on wall-clock timing.
func RateGate(limiter ratelimit.Limiter, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := limiter.TryAcquire(key)
		if !ok {
			seconds := int64(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": gin.H{"code": "RATE_LIMITED", "message": "Refresh was triggered too recently"}})
			return
		}
		c.Next()
	}
}
