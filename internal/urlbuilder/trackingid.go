package urlbuilder

import (
	"regexp"

	"github.com/google/uuid"
)

var trackingIDPattern = regexp.MustCompile(
	`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// NewTrackingID returns a random v4 UUID usable as a referenceId.
func NewTrackingID() string {
	return uuid.New().String()
}

// IsValidTrackingID reports whether id is a canonical v4 UUID.
func IsValidTrackingID(id string) bool {
	return trackingIDPattern.MatchString(id)
}
