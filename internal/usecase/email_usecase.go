package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/sanitizer"
	"portfolio-backend/pkg/validation"
)

type emailUsecase struct {
	validator *validation.EmailValidator
}

func NewEmailUsecase(v *validation.EmailValidator) domain.EmailUsecase {
	return &emailUsecase{validator: v}
}

// ValidateEmail lower-cases and trims the input before validating it
func (u *emailUsecase) ValidateEmail(_ context.Context, raw string) domain.EmailValidationResult {
	result := u.validator.Validate(sanitizer.Email(raw))
	return domain.EmailValidationResult{
		IsValid: result.IsValid,
		Error:   result.Error,
	}
}
