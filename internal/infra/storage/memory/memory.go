package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/storage"
)

// BuildRepo is an in-process storage.BuildRepository.
type BuildRepo struct {
	mu     sync.RWMutex
	builds map[string]domain.RegistryBuild
}

func NewBuildRepo() *BuildRepo {
	return &BuildRepo{builds: make(map[string]domain.RegistryBuild)}
}

func (r *BuildRepo) RecordBuild(_ context.Context, build *domain.RegistryBuild) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builds[build.ID]; ok {
		return storage.ErrBuildExists
	}
	r.builds[build.ID] = clone(*build)
	return nil
}

func (r *BuildRepo) ListBuilds(_ context.Context, limit int) ([]domain.RegistryBuild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.RegistryBuild, 0, len(r.builds))
	for _, b := range r.builds {
		b = clone(b)
		b.Addresses = nil
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BuiltAt.Equal(out[j].BuiltAt) {
			return out[i].BuiltAt.After(out[j].BuiltAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BuildRepo) GetBuild(_ context.Context, id string) (*domain.RegistryBuild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builds[id]
	if !ok {
		return nil, storage.ErrBuildNotFound
	}
	b = clone(b)
	return &b, nil
}

func clone(b domain.RegistryBuild) domain.RegistryBuild {
	b.SourceBreakdown = maps.Clone(b.SourceBreakdown)
	b.Errors = slices.Clone(b.Errors)
	b.Warnings = slices.Clone(b.Warnings)
	b.Addresses = slices.Clone(b.Addresses)
	return b
}
