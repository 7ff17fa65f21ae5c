package respond

import "regexp"

// masks run in order: a bearer header swallows its JWT before the bare JWT
// rule sees it.
var masks = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)bearer\s+[^\s"']+`), "Bearer ****"},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "****"},
	{regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`), "$$2a$$****"},
	// DSN userinfo password
	{regexp.MustCompile(`://([^:/@]+):([^@]+)@`), "://$1:****@"},
}

// SanitizeError returns err's message with tokens, password hashes and DSN
// passwords masked, or "" for nil.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, m := range masks {
		msg = m.re.ReplaceAllString(msg, m.repl)
	}
	return msg
}
