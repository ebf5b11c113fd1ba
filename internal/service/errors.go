package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail    = errors.New("a valid email address is required")
	ErrMissingName     = errors.New("first and last name are required")
	ErrInvalidPhone    = errors.New("a valid phone number is required")
	ErrInvalidDelivery = errors.New("delivery method must be pickup or shipping")
	ErrMissingShipping = errors.New("governorate, city, and address are required for shipping")
	ErrInvalidItems    = errors.New("order items are invalid")
	ErrMissingMessage  = errors.New("name, email, and message are required")

	// ErrEmailDelivery wraps provider failures. The provider detail is
	// logged server-side and never surfaced to the caller.
	ErrEmailDelivery = errors.New("email delivery failed")
)

// RateLimitError is returned when a per-IP or per-email window is
// exhausted. RetryAfter is whole seconds until the window resets.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
}
