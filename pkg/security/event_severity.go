package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from the EventType, never from request input.
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventDispatchSucceeded:  SeverityINFO,
	EventMaintenanceBlocked: SeverityINFO,
	EventValidationFailed:   SeverityINFO,

	EventSuspiciousRequest:  SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,

	EventRateLimitError: SeverityHIGH,
	EventDispatchFailed: SeverityHIGH,
}

// GetSeverity returns the severity for an event type.
// Unmapped types default to WARN.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityWARN
}

// level maps a severity onto the zap level the event is written at
func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
