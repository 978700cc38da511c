package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName,omitempty" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Message   string `json:"message" form:"message"`
}

// SanitizedContact is the escaped and trimmed copy of a ContactRequest
// that is safe to embed in an outgoing message.
type SanitizedContact struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates, sanitizes and relays a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
