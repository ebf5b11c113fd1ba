// Package normalize sanitizes untrusted submission values. Every function
// accepts an arbitrary decoded JSON value and never fails: invalid input
// produces an empty string, zero, or false, and the caller decides whether
// that is a rejection.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Text returns the value trimmed and truncated to maxLen characters, or
// "" when the value is not a string.
func Text(v any, maxLen int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return truncate(strings.TrimSpace(s), maxLen)
}

// MultilineText behaves like Text but first normalizes CRLF and bare CR
// line endings to LF, so downstream newline-to-<br/> conversion stays
// correct after truncation.
func MultilineText(v any, maxLen int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return truncate(s, maxLen)
}

// truncate cuts on rune boundaries. Byte slicing could split a
// multibyte character and leak invalid UTF-8 into the rendered emails.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// Email lower-cases and trims an email value. It does not validate.
func Email(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether the value looks like a deliverable address:
// 5 to 320 characters shaped like local@domain.tld.
func ValidEmail(v any) bool {
	email := Email(v)
	if len(email) < 5 || len(email) > 320 {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the value is 6 to 24 characters drawn from
// digits, "+", "()", "-", and spaces.
func ValidPhone(v any) bool {
	s := Text(v, 64)
	if len(s) < 6 || len(s) > 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '(' || r == ')' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	return true
}

// Bool returns the value as a bool, false for anything that is not one.
func Bool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
