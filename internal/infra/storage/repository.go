package storage

import (
	"context"
	"errors"

	"github.com/vietddude/ramp/internal/core/domain"
)

var (
	// ErrBuildNotFound is returned when a build id doesn't exist
	ErrBuildNotFound = errors.New("registry build not found")
	// ErrBuildExists is returned when a build id is recorded twice
	ErrBuildExists = errors.New("registry build already recorded")
)

// BuildRepository stores the history of deposit address registry builds.
type BuildRepository interface {
	// RecordBuild saves a build and its address table
	RecordBuild(ctx context.Context, build *domain.RegistryBuild) error

	// ListBuilds returns the most recent builds, newest first, without addresses
	ListBuilds(ctx context.Context, limit int) ([]domain.RegistryBuild, error)

	// GetBuild returns one build including its address table
	GetBuild(ctx context.Context, id string) (*domain.RegistryBuild, error)
}
