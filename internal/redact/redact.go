// Package redact removes credentials and personal data from strings before
// they are written to logs. Database URLs, access tokens, device API keys,
// upstream API keys, password-like assignments and email addresses are
// replaced with fixed placeholders.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted values.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	DeviceKeyPlaceholder  = "[REDACTED_DEVICE_KEY]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql)://[^\s@/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`lxd_[A-Za-z0-9_-]{8,}`),
		replacement: DeviceKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s"]+`),
		replacement: "${1}" + Placeholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(password|passwd|secret|api[_-]?key|wifi_?password)(\s*[=:]\s*)("[^"]*"|'[^']*'|[^\s,;&]+)`,
		),
		replacement: "${1}${2}" + Placeholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: EmailPlaceholder,
	},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.replacement)
	}
	return input
}

// Error returns the redacted text of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Attr returns an "error" log attribute holding the redacted error text.
func Attr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
