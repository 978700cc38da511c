package security

import "regexp"

// suspiciousPatterns flag input that looks like SQL injection, script
// injection or credential probing. Matches are logged, never blocked.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(select|union|insert|delete|from|drop table|where|script)\s\b`),
	regexp.MustCompile(`(?i)<script\b[^>]*>(.*?)</script>`),
	regexp.MustCompile(`(?i)[<>]javascript:`),
	regexp.MustCompile(`(?i)\b(admin|root|password|passwd|pwd)\s\b`),
}

// IsSuspicious reports whether any of the inputs matches a probe pattern.
func IsSuspicious(inputs ...string) bool {
	for _, p := range suspiciousPatterns {
		for _, in := range inputs {
			if p.MatchString(in) {
				return true
			}
		}
	}
	return false
}
