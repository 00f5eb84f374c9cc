package status

import (
	"errors"

	"github.com/vietddude/ramp/internal/core/domain"
)

// Action tells a caller what to do with a failed lookup.
type Action int

const (
	// ActionFatal means asking again will give the same answer.
	ActionFatal Action = iota
	// ActionRetryable means a later attempt may succeed.
	ActionRetryable
)

func (a Action) String() string {
	if a == ActionRetryable {
		return "retryable"
	}
	return "fatal"
}

// Classify determines the action for err.
func Classify(err error) Action {
	switch {
	case err == nil:
		return ActionFatal
	case domain.IsValidation(err):
		return ActionFatal
	case errors.Is(err, domain.ErrUpstreamNetwork),
		errors.Is(err, domain.ErrUpstreamTimeout),
		errors.Is(err, domain.ErrUpstreamServer):
		return ActionRetryable
	default:
		// NotFound, Auth, MalformedResponse and anything unexpected
		return ActionFatal
	}
}
