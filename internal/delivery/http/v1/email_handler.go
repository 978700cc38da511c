package v1

import (
	"net/http"

	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	msgEmailValid   = "Email is valid"
	msgEmailMissing = "Please provide an email address to validate"
)

type EmailHandler struct {
	emailUC domain.EmailUsecase
}

func NewEmailHandler(r *gin.RouterGroup, emailUC domain.EmailUsecase) {
	handler := &EmailHandler{
		emailUC: emailUC,
	}

	r.POST("/email/validate", handler.Validate)
}

// Validate answers {isValid, message} for a single address
func (h *EmailHandler) Validate(c *gin.Context) {
	var req domain.EmailValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, domain.EmailValidationResponse{
			IsValid: false,
			Message: msgEmailMissing,
		})
		return
	}

	result := h.emailUC.ValidateEmail(c.Request.Context(), req.Email)
	message := result.Error
	if message == "" {
		message = msgEmailValid
	}

	c.JSON(http.StatusOK, domain.EmailValidationResponse{
		IsValid: result.IsValid,
		Message: message,
	})
}
