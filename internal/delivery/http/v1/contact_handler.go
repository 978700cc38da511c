package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

const contactRequestKey = "contactRequest"

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact form route behind its own limiter.
// The body is parsed first, so malformed requests never use up the allowance.
func NewContactHandler(r *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	r.POST("/contact", handler.BindContact, limiter, handler.SubmitContact)
}

// BindContact parses a JSON or form encoded submission into the context.
func (h *ContactHandler) BindContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.Set(contactRequestKey, &req)
}

// SubmitContact validates, sanitizes and forwards a contact form submission.
// Failures are attached to the context and rendered by the error middleware.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	req := c.MustGet(contactRequestKey).(*domain.ContactRequest)

	if err := h.contactUC.SendContactMessage(c.Request.Context(), req); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, usecase.MsgContactSent, nil)
}
