package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoaoOliveiraaa/minishop/internal/cache"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 10
)

// RateLimiter caps requests per client IP per minute using Redis.
// When Redis is unavailable the limiter lets everything through.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache.Client == nil {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()

		count, err := cache.Client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			cache.Client.Expire(c.Request.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
