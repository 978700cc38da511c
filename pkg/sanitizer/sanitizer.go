// Package sanitizer neutralizes markup in user supplied text before it is
// embedded in outgoing messages.
package sanitizer

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Escape replaces HTML significant characters with their entities.
// It is not idempotent: escaping an escaped string escapes the ampersands again.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Text escapes s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(Escape(s))
}

// Email lower-cases and trims an address. No escaping is applied.
func Email(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
