package middleware

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// MaintenanceConfig switches the maintenance gate
type MaintenanceConfig struct {
	Enabled  bool
	Duration string
	// Paths that stay reachable, typically health checks
	SkipPaths []string
	Logger    *security.SecurityLogger
}

// MaintenanceMode answers 503 for every route except the skipped ones while enabled
func MaintenanceMode(cfg MaintenanceConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok || !cfg.Enabled {
			c.Next()
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventMaintenanceBlocked,
				IP:        c.ClientIP(),
				Method:    c.Request.Method,
				Path:      c.Request.URL.Path,
				RequestID: c.GetString(response.RequestIDKey),
			})
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"success":           false,
			"error":             "Service unavailable",
			"message":           "The server is currently under maintenance. Please try again later.",
			"estimatedDowntime": cfg.Duration,
		})
	}
}
