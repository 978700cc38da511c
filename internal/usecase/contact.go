package usecase

import (
	"context"
	"net/http"
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/sanitizer"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"
)

// Response copy for contact form failures
const (
	MsgContactSent     = "Email sent successfully! Thank you for your message."
	LabelInvalidEmail  = "Invalid email address"
	LabelSendFailed    = "Failed to send email"
	MsgSendFailedRetry = "An error occurred while processing your request. Please try again later."
)

// ContactDispatcher delivers a sanitized submission
type ContactDispatcher interface {
	Send(ctx context.Context, data email.ContactEmailData) (string, error)
}

type contactUsecase struct {
	fields     *validation.FieldValidator
	emails     *validation.EmailValidator
	dispatcher ContactDispatcher
	secLog     *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(fields *validation.FieldValidator, emails *validation.EmailValidator, dispatcher ContactDispatcher, secLog *security.SecurityLogger) domain.ContactUsecase {
	if secLog == nil {
		secLog = security.NewNopSecurityLogger()
	}
	return &contactUsecase{
		fields:     fields,
		emails:     emails,
		dispatcher: dispatcher,
		secLog:     secLog,
	}
}

// SendContactMessage validates the fields, sanitizes them, checks the
// address and only then hands the message to the dispatcher.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if errs := uc.fields.ValidateContactFields(validation.ContactFields{
		FirstName: req.FirstName,
		Email:     req.Email,
		Message:   req.Message,
	}); len(errs) > 0 {
		uc.logValidationFailure(ctx, "fields", errs...)
		return apperror.BadRequest(validation.MsgValidationFailed, strings.Join(errs, ", "))
	}

	sanitized := SanitizeContact(req)

	if result := uc.emails.Validate(sanitized.Email); !result.IsValid {
		uc.logValidationFailure(ctx, "email", result.Error)
		return apperror.BadRequest(LabelInvalidEmail, result.Error)
	}

	messageID, err := uc.dispatcher.Send(ctx, email.ContactEmailData{
		FirstName: sanitized.FirstName,
		LastName:  sanitized.LastName,
		Email:     sanitized.Email,
		Message:   sanitized.Message,
	})
	if err != nil {
		uc.secLog.LogDispatchFailed(ctx, sanitized.Email, requestIDFrom(ctx), err)
		return apperror.New(http.StatusInternalServerError, LabelSendFailed, MsgSendFailedRetry, err)
	}

	uc.secLog.Log(ctx, security.SecurityEvent{
		Event:        security.EventDispatchSucceeded,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(sanitized.Email),
		RequestID:    requestIDFrom(ctx),
		Details:      map[string]interface{}{"message_id": messageID},
	})
	return nil
}

// SanitizeContact escapes and trims the free text fields and normalizes the
// address. A missing last name becomes the empty string.
func SanitizeContact(req *domain.ContactRequest) domain.SanitizedContact {
	return domain.SanitizedContact{
		FirstName: sanitizer.Text(req.FirstName),
		LastName:  sanitizer.Text(req.LastName),
		Email:     sanitizer.Email(req.Email),
		Message:   sanitizer.Text(req.Message),
	}
}

func (uc *contactUsecase) logValidationFailure(ctx context.Context, stage string, reasons ...string) {
	ip, _ := ctx.Value(domain.KeyClientIP).(string)
	uc.secLog.Log(ctx, security.SecurityEvent{
		Event:     security.EventValidationFailed,
		IP:        ip,
		RequestID: requestIDFrom(ctx),
		Details: map[string]interface{}{
			"stage":   stage,
			"reasons": reasons,
		},
	})
}
