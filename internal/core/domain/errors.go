package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the asset has no configured deposit address.
	ErrNotFound = errors.New("deposit address not configured")
	// ErrNotReady means the registry has not completed its first build.
	ErrNotReady = errors.New("registry not ready")

	ErrUpstreamNotFound  = errors.New("upstream: not found")
	ErrUpstreamAuth      = errors.New("upstream: authentication failed")
	ErrUpstreamServer    = errors.New("upstream: server error")
	ErrUpstreamNetwork   = errors.New("upstream: network error")
	ErrUpstreamTimeout   = errors.New("upstream: timeout")
	ErrMalformedResponse = errors.New("upstream: malformed response")
)

// ValidationError is bad client input. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigError is a missing or invalid configuration value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

// UpstreamError is a classified failure talking to an external service.
type UpstreamError struct {
	Op         string
	StatusCode int
	Kind       error
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (http %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
