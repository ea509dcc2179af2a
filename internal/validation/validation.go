// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	maxEmailLen = 254
	maxURLLen   = 2048
)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLen)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateURL accepts absolute http and https links only. label names the
// field in the returned message.
func ValidateURL(label, raw string) error {
	if len(raw) > maxURLLen {
		return fmt.Errorf("%s must not exceed %d characters", label, maxURLLen)
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return fmt.Errorf("%s must be a valid URL", label)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", label)
	}
	return nil
}

// ValidateOptionalURL is ValidateURL for nullable fields; nil and blank pass.
func ValidateOptionalURL(label string, raw *string) error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	return ValidateURL(label, *raw)
}
