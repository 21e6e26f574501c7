// Package redact removes sensitive information from strings before they are
// logged. Error text produced while serving a request may quote tokens,
// personal data from the request arguments, or store addresses; none of
// those belong in log files.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedPhonePlaceholder      = "[REDACTED_PHONE]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules must not leave text a later rule
// would mangle.
var rules = []rule{
	// Hex SHA-512 digests used as request tokens
	{regexp.MustCompile(`\b[0-9a-fA-F]{128}\b`), RedactedTokenPlaceholder},

	// Score cache keys are digests of personal data
	{regexp.MustCompile(`\buid:[0-9a-f]{32}\b`), RedactedKeyPlaceholder},

	// Credentials in key=value form
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|salt|token|secret)(['"\s:=]+)[^'"&\s,]{3,}`), RedactedCredentialPlaceholder},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},

	// Phone numbers in the accepted 7XXXXXXXXXX form
	{regexp.MustCompile(`\b7\d{10}\b`), RedactedPhonePlaceholder},

	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},

	// host:port and IPv4:port, as found in dial errors
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}:\d{1,5}\b`), RedactedHostPlaceholder},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z][a-zA-Z0-9-]*:\d{1,5}\b`), RedactedHostPlaceholder},
	{regexp.MustCompile(`\blocalhost:\d{1,5}\b`), RedactedHostPlaceholder},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
