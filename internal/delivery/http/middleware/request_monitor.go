package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// RequestMonitor logs requests whose body or query look like injection or
// credential probing. It never rejects or alters the request; the body is
// buffered and restored so handlers can still bind it.
func RequestMonitor(logger *security.SecurityLogger) gin.HandlerFunc {
	if logger == nil {
		logger = security.NewNopSecurityLogger()
	}
	return func(c *gin.Context) {
		body := readBody(c)
		query := serializeQuery(c)

		if security.IsSuspicious(body, query) {
			logger.LogSuspiciousRequest(
				c.Request.Context(),
				c.ClientIP(),
				userAgent(c),
				c.Request.Method,
				c.Request.URL.RequestURI(),
				c.GetString(response.RequestIDKey),
				body,
				query,
			)
		}

		c.Next()
	}
}

func userAgent(c *gin.Context) string {
	if ua := c.GetHeader("User-Agent"); ua != "" {
		return ua
	}
	return "unknown"
}

// readBody returns the body as decoded and re-encoded JSON, so escapes such
// as \u003c are matched as the characters handlers will see. Bodies that
// are not JSON are returned raw; an absent body serializes as "{}".
func readBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return "{}"
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), errReader{err}))
	if len(raw) == 0 {
		return "{}"
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if dec.Decode(&v) != nil || dec.More() {
		return string(raw)
	}
	if s, err := encodeJSON(v); err == nil {
		return s
	}
	return string(raw)
}

// encodeJSON serializes v without HTML escaping or a trailing newline.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func serializeQuery(c *gin.Context) string {
	q := c.Request.URL.Query()
	if len(q) == 0 {
		return "{}"
	}
	s, err := encodeJSON(q)
	if err != nil {
		return c.Request.URL.RawQuery
	}
	return s
}

// errReader replays a read error (e.g. body too large) after the buffered bytes
type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return 0, io.EOF
}
