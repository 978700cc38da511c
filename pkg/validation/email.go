package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
)

// MaxEmailLength is the longest address accepted, per RFC 5321 path limits.
const MaxEmailLength = 254

// Messages returned by EmailValidator.
const (
	MsgInvalidEmailFormat = "Invalid email format"
	MsgEmailTooLong       = "Email address is too long"
	MsgDisposableEmail    = "Disposable email addresses are not allowed. Please use a permanent email address."
)

var errMalformedAddress = errors.New("malformed address")

// Result is the outcome of validating a single address.
type Result struct {
	IsValid bool
	Error   string
}

func invalid(msg string) Result {
	return Result{IsValid: false, Error: msg}
}

// EmailValidator checks format, length, disposable domains and common typos.
// It holds no mutable state and is safe for concurrent use.
type EmailValidator struct {
	validate *validator.Validate
}

func NewEmailValidator(v *validator.Validate) *EmailValidator {
	if v == nil {
		v = validator.New()
	}
	return &EmailValidator{validate: v}
}

// Validate runs the checks in order and stops at the first failure.
func (ev *EmailValidator) Validate(email string) Result {
	if err := ev.validate.Var(email, "required,email"); err != nil {
		return invalid(MsgInvalidEmailFormat)
	}

	if _, err := NormalizeEmail(email); err != nil {
		return invalid(MsgInvalidEmailFormat)
	}

	if len(email) > MaxEmailLength {
		return invalid(MsgEmailTooLong)
	}

	local, domain := splitAddress(email)
	domain = strings.ToLower(domain)

	if IsDisposableDomain(domain) {
		return invalid(MsgDisposableEmail)
	}

	if suggestion, ok := SuggestDomain(domain); ok {
		return invalid(fmt.Sprintf("Did you mean %s@%s?", local, suggestion))
	}

	return Result{IsValid: true}
}

// NormalizeEmail returns the canonical form of an address: the local part
// untouched and the domain lower-cased and converted to its ASCII form.
func NormalizeEmail(email string) (string, error) {
	local, domain := splitAddress(email)
	if local == "" || domain == "" {
		return "", errMalformedAddress
	}

	ascii, err := idna.Lookup.ToASCII(strings.ToLower(domain))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errMalformedAddress, err)
	}
	return local + "@" + ascii, nil
}

func splitAddress(email string) (string, string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, ""
	}
	return email[:at], email[at+1:]
}
