package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the context as an
// {error, message} payload. Internal details are logged, never returned.
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code, label, message := classify(err)

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(response.RequestIDKey),
				"error", err,
			)
		}

		response.Error(c, code, label, message)
	}
}

func classify(err error) (int, string, string) {
	var (
		appErr    *apperror.AppError
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr.Code, appErr.Label, appErr.Message
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, "Payload too large", "The request body exceeds the size limit."
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return http.StatusBadRequest, "Invalid JSON", "The request body contains invalid JSON format."
	default:
		// SECURITY: Never expose internal error details to clients.
		return http.StatusInternalServerError, "Internal server error", "Something went wrong!"
	}
}
