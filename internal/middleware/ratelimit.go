package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Headers advertising the caller's upload quota.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimit throttles a route group per client IP. Every response carries the quota headers;
// a rejected request also gets Retry-After in seconds.
func RateLimit(uploadLimiter *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_ip", key))

		quota, err := uploadLimiter.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Rate limit store unavailable", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Upload quota could not be checked, please retry"})
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.FormatInt(quota.Limit, 10))
		c.Header(HeaderRateLimitRemaining, strconv.FormatInt(quota.Remaining, 10))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(quota.Reset, 10))

		if quota.Reached {
			retryAfter := int64(time.Until(time.Unix(quota.Reset, 0)).Seconds()) + 1
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			logger.Warn("Upload rate limit reached", slog.Int64("limit", quota.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many uploads, retry in " + strconv.FormatInt(retryAfter, 10) + "s"})
			return
		}

		c.Next()
	}
}
