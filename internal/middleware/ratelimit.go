package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// KeyFunc selects the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// ClientIPKey buckets requests by client IP.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// IntegrationTokenKey buckets event pushes by integration token, falling
// back to the client IP.
func IntegrationTokenKey(c *gin.Context) string {
	if token, ok := GetIntegrationToken(c); ok {
		return "token:" + token.ID
	}
	return c.ClientIP()
}

// RateLimit creates a Gin middleware for rate limiting requests.
func RateLimit(limiterInstance *limiter.Limiter, keyFn KeyFunc) gin.HandlerFunc {
	if keyFn == nil {
		keyFn = ClientIPKey
	}
	return func(c *gin.Context) {
		key := keyFn(c)

		context, err := limiterInstance.Get(c.Request.Context(), key)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", context.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
