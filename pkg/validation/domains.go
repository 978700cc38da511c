package validation

// disposableDomains lists providers of temporary, throwaway mailboxes.
var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"mailinator.com":    {},
	"guerrillamail.com": {},
	"tempmail.org":      {},
	"throwaway.email":   {},
	"temp-mail.org":     {},
	"getairmail.com":    {},
	"sharklasers.com":   {},
}

// domainTypos maps common misspellings of major providers to the intended domain.
var domainTypos = map[string]string{
	"gmial.com":   "gmail.com",
	"gmai.com":    "gmail.com",
	"yahooo.com":  "yahoo.com",
	"hotmial.com": "hotmail.com",
	"outlok.com":  "outlook.com",
}

// IsDisposableDomain reports whether domain belongs to a disposable mailbox provider.
func IsDisposableDomain(domain string) bool {
	_, ok := disposableDomains[domain]
	return ok
}

// SuggestDomain returns the corrected domain when domain is a known typo.
func SuggestDomain(domain string) (string, bool) {
	s, ok := domainTypos[domain]
	return s, ok
}
