// Package redact strips sensitive fragments from error messages before they
// are logged. Database connection strings, credentials, and raw SQL routinely
// ride along inside driver errors; logging them verbatim leaks secrets and
// schema detail.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	keyPlaceholder        = "[REDACTED_KEY]"
	sqlPlaceholder        = "[REDACTED_SQL]"
)

var (
	// Connection strings with inline credentials, e.g. postgres://user:pw@host
	connStringRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., pwd: ... and similar assignments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// API keys, tokens, and secrets in key=value form
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// SQL statement fragments surfaced by driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)(?:[\s\w,*()='"$]+)?`,
	)
)

// String returns s with sensitive fragments replaced by placeholders.
func String(s string) string {
	s = connStringRegex.ReplaceAllString(s, credentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+credentialPlaceholder)
	s = apiKeyRegex.ReplaceAllString(s, "$1$2"+keyPlaceholder)
	s = sqlRegex.ReplaceAllString(s, sqlPlaceholder)
	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
