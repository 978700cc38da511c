package apperror

import "net/http"

// AppError is an error that carries its HTTP rendering.
// Label becomes the "error" field of the response, Message the "message" field.
type AppError struct {
	Code    int    `json:"code"`
	Label   string `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, label, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Label:   label,
		Message: message,
		Err:     err,
	}
}

func BadRequest(label, message string) *AppError {
	return New(http.StatusBadRequest, label, message, nil)
}

func Forbidden(label, message string) *AppError {
	return New(http.StatusForbidden, label, message, nil)
}

func NotFound(label, message string) *AppError {
	return New(http.StatusNotFound, label, message, nil)
}

func TooManyRequests(label, message string) *AppError {
	return New(http.StatusTooManyRequests, label, message, nil)
}

func ServiceUnavailable(label, message string) *AppError {
	return New(http.StatusServiceUnavailable, label, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error", "Something went wrong!", err)
}
