package v1

import (
	"net/http"

	"portfolio-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	healthUC usecase.HealthUsecase
}

// NewSystemHandler registers the health checks on the engine root and the
// route listing under api.
func NewSystemHandler(root *gin.Engine, api *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &SystemHandler{
		healthUC: healthUC,
	}

	root.GET("/", handler.Health)
	api.GET("/health", handler.Health)
	api.GET("/test", handler.Routes)
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}

// Routes lists the public endpoints
func (h *SystemHandler) Routes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API routes are working!",
		"endpoints": gin.H{
			"contact":       "POST /api/contact (Rate limited: 3 requests per 15 minutes)",
			"validateEmail": "POST /api/email/validate",
			"resume":        "GET /api/download/resume",
			"test":          "GET /api/test",
		},
		"features": gin.H{
			"emailValidation":   "Enhanced email validation with disposable email detection",
			"rateLimiting":      "Contact form protected with rate limiting",
			"inputSanitization": "All inputs are sanitized and validated",
			"errorHandling":     "Comprehensive error handling and user feedback",
		},
		"timestamp": h.healthUC.Check(c.Request.Context()).Timestamp,
	})
}
