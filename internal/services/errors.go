package services

import (
	"errors"
	"fmt"
	"time"
)

// Pipeline errors. Handlers translate these to HTTP statuses; anything else
// escaping a service is a 500 with a generic body.
var (
	ErrMessageNotFound     = errors.New("message not found or expired")
	ErrReportNotFound      = errors.New("report not found")
	ErrDuplicateReport     = errors.New("you have already reported this message")
	ErrProhibitedContent   = errors.New("message contains prohibited content")
	ErrTooManySpecialChars = errors.New("message contains too many special characters")
)

// ValidationError describes the exact violated input constraint.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// RateLimitError carries the retry hint derived from the limiter window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return "rate limit exceeded" }
