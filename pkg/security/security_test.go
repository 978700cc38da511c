package security_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsSuspicious(t *testing.T) {
	suspicious := []string{
		`{"message":"1 union select password from users"}`,
		`{"message":"<script>alert(1)</script>"}`,
		`{"message":"<javascript:alert(1)"}`,
		`{"firstName":"admin user"}`,
		`{"q":"DROP TABLE users"}`,
	}
	for _, in := range suspicious {
		assert.True(t, security.IsSuspicious(in), in)
	}

	clean := []string{
		`{"firstName":"John","message":"I would like to hire you for a project."}`,
		`{}`,
		`{"message":"selection of fromage"}`,
	}
	for _, in := range clean {
		assert.False(t, security.IsSuspicious(in), in)
	}

	assert.True(t, security.IsSuspicious(`{}`, `{"id":["1 or 1=1; drop table x"]}`))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", security.Truncate("short", 200))
	long := strings.Repeat("x", 250)
	got := security.Truncate(long, 200)
	assert.Len(t, got, 203)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("john@example.com"))
	assert.Equal(t, "***@example.com", security.MaskEmail("j@example.com"))
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.Len(t, security.MaskEmail("not-an-email"), 16)
}

func TestSecurityLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLoggerFromZap(zap.New(core), "portfolio-backend", "test")
	ctx := context.Background()

	sl.LogSuspiciousRequest(ctx, "10.0.0.1", "curl/8", "POST", "/api/contact", "req-1", strings.Repeat("b", 300), "{}")
	sl.LogRateLimitTriggered(ctx, "10.0.0.1", "curl/8", "req-2", "/api/contact")
	sl.LogDispatchFailed(ctx, "john@example.com", "req-3", errors.New("smtp: 535"))

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "suspicious_request", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "10.0.0.1", fields["ip"])
	assert.Equal(t, "curl/8", fields["user_agent"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/contact", fields["path"])
	assert.Contains(t, fields["details"], strings.Repeat("b", 200)+"...")

	assert.Equal(t, "WARN", fields["severity"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "HIGH", entries[2].ContextMap()["severity"])
	assert.Equal(t, "j***@example.com", entries[2].ContextMap()["subject_value"])
}

func TestNewSecurityLogger_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	sl, err := security.NewSecurityLogger(security.LoggerConfig{ServiceName: "svc", Environment: "test", Level: "info", LogDir: dir})
	require.NoError(t, err)

	sl.LogDispatchFailed(context.Background(), "john@example.com", "req", errors.New("boom"))
	_ = sl.Sync()

	assert.FileExists(t, dir+"/combined.log")
	assert.FileExists(t, dir+"/error.log")
}

func TestGetSeverity(t *testing.T) {
	assert.Equal(t, security.SeverityINFO, security.GetSeverity(security.EventDispatchSucceeded))
	assert.Equal(t, security.SeverityHIGH, security.GetSeverity(security.EventRateLimitError))
	assert.Equal(t, security.SeverityWARN, security.GetSeverity(security.EventType("unknown")))
}

func TestMatchesExtension(t *testing.T) {
	pdf := []byte("%PDF-1.7\n...")
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}

	assert.True(t, security.MatchesExtension("resume.pdf", pdf))
	assert.True(t, security.MatchesExtension("photo.PNG", png))
	assert.True(t, security.MatchesExtension("photo.jpeg", jpg))
	assert.True(t, security.MatchesExtension("photo.jpg", jpg))

	assert.False(t, security.MatchesExtension("photo.png", pdf), "spoofed extension")
	assert.False(t, security.MatchesExtension("resume.pdf", []byte("%P")), "too short")
	assert.False(t, security.MatchesExtension("notes.txt", []byte("plain text")), "unknown extension")
}
