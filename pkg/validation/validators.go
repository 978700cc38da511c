package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Field-level messages for the contact form
const (
	MsgRequiredFields   = "firstName, email, and message are required fields"
	MsgFirstNameLength  = "First name must be between 2 and 50 characters"
	MsgMessageTooShort  = "Please provide a message with at least 10 characters"
	MsgMessageTooLong   = "Please keep your message under 5000 characters"
	MsgValidationFailed = "Validation failed"
)

// ContactFields carries the user supplied contact form values as received.
// Length bounds are applied to non-empty values only; emptiness is reported
// once for all required fields.
type ContactFields struct {
	FirstName string `validate:"omitempty,min=2,max=50"`
	Email     string
	Message   string `validate:"omitempty,min=10,max=5000"`
}

// FieldValidator applies the contact form field rules.
type FieldValidator struct {
	validate *validator.Validate
}

func NewFieldValidator(v *validator.Validate) *FieldValidator {
	if v == nil {
		v = validator.New()
	}
	return &FieldValidator{validate: v}
}

// ValidateContactFields returns every rule violation; an empty result means
// the submission passed.
func (fv *FieldValidator) ValidateContactFields(f ContactFields) []string {
	var messages []string

	if f.FirstName == "" || f.Email == "" || f.Message == "" {
		messages = append(messages, MsgRequiredFields)
	}

	err := fv.validate.Struct(f)
	if err == nil {
		return messages
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return append(messages, err.Error())
	}

	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return messages
}

// formatFieldError maps a single validator failure to its user-facing message
func formatFieldError(e validator.FieldError) string {
	switch e.Field() {
	case "FirstName":
		return MsgFirstNameLength
	case "Message":
		if e.Tag() == "min" {
			return MsgMessageTooShort
		}
		return MsgMessageTooLong
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field(), e.Tag())
	}
}
