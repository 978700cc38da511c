package domain

import "context"

// EmailValidationResult is the outcome of checking a single address
type EmailValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// EmailValidationRequest is the body of the validate endpoint
type EmailValidationRequest struct {
	Email string `json:"email"`
}

// EmailValidationResponse is returned by the validate endpoint
type EmailValidationResponse struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

type EmailUsecase interface {
	// ValidateEmail normalizes the raw input and runs the address checks
	ValidateEmail(ctx context.Context, email string) EmailValidationResult
}
