package middleware

import (
	"net/http"
	"strconv"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/ratelimit"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds the HTTP side of a limiter: how clients are keyed
// and what a rejected client is told.
type RateLimitConfig struct {
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Rejection body
	Label   string
	Message string
	// Optional security log for rejections
	Logger *security.SecurityLogger
}

// ContactRateLimitConfig returns the rejection copy for the contact form
func ContactRateLimitConfig(logger *security.SecurityLogger) RateLimitConfig {
	return RateLimitConfig{
		Label:   "Too many contact form submissions",
		Message: "Please wait before submitting another message. You can submit up to 3 messages per 15 minutes.",
		Logger:  logger,
	}
}

// GlobalRateLimitConfig returns the rejection copy for the site wide limiter
func GlobalRateLimitConfig(logger *security.SecurityLogger) RateLimitConfig {
	return RateLimitConfig{
		Label:   "Too many requests",
		Message: "You have exceeded the rate limit. Please try again later.",
		Logger:  logger,
	}
}

func (cfg RateLimitConfig) key(c *gin.Context) string {
	if cfg.KeyFunc != nil {
		return cfg.KeyFunc(c)
	}
	return c.ClientIP()
}

// RateLimitMiddleware applies a fixed window limiter to the routes it guards.
// When the store fails closed the request is refused with 503.
func RateLimitMiddleware(limiter *ratelimit.Limiter, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), cfg.key(c))
		if err != nil {
			logRateLimitError(c, cfg.Logger, err)
			response.AbortWithError(c, http.StatusServiceUnavailable, "Service unavailable", "Service temporarily unavailable. Please try again.")
			return
		}
		enforce(c, cfg, result)
	}
}

func enforce(c *gin.Context, cfg RateLimitConfig, result ratelimit.Result) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))

	if !result.Allowed {
		retryAfter := result.RetryAfter(time.Now())
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))

		logRateLimitTriggered(c, cfg.Logger)

		response.AbortWithError(c, http.StatusTooManyRequests, cfg.Label, cfg.Message)
		return
	}

	c.Next()
}

// logRateLimitTriggered logs when rate limiting is triggered
func logRateLimitTriggered(c *gin.Context, logger *security.SecurityLogger) {
	if logger == nil {
		return
	}
	logger.LogRateLimitTriggered(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString(response.RequestIDKey),
		c.FullPath(),
	)
}

// logRateLimitError logs store errors
func logRateLimitError(c *gin.Context, logger *security.SecurityLogger, err error) {
	if logger == nil {
		return
	}
	logger.Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventRateLimitError,
		IP:        c.ClientIP(),
		RequestID: c.GetString(response.RequestIDKey),
		Details: map[string]interface{}{
			"error": err.Error(),
		},
	})
}
