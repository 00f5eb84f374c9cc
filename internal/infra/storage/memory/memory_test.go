package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/storage"
)

var _ storage.BuildRepository = (*BuildRepo)(nil)

func TestBuildRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewBuildRepo()
	base := time.Unix(1700000000, 0)

	for i, id := range []string{"a", "b", "c"} {
		err := repo.RecordBuild(ctx, &domain.RegistryBuild{
			ID:        id,
			Trigger:   "rebuild",
			BuiltAt:   base.Add(time.Duration(i) * time.Minute),
			Entries:   1,
			Addresses: []domain.DepositAddress{{Symbol: "ETH", Address: "0x1"}},
		})
		if err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	if err := repo.RecordBuild(ctx, &domain.RegistryBuild{ID: "a"}); !errors.Is(err, storage.ErrBuildExists) {
		t.Errorf("expected ErrBuildExists, got %v", err)
	}

	list, err := repo.ListBuilds(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Addresses != nil {
		t.Error("listing must not carry address tables")
	}

	got, err := repo.GetBuild(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Addresses) != 1 {
		t.Errorf("expected address table, got %+v", got)
	}
	got.Addresses[0].Address = "mutated"
	again, _ := repo.GetBuild(ctx, "a")
	if again.Addresses[0].Address != "0x1" {
		t.Error("returned builds must not alias stored state")
	}

	if _, err := repo.GetBuild(ctx, "missing"); !errors.Is(err, storage.ErrBuildNotFound) {
		t.Errorf("expected ErrBuildNotFound, got %v", err)
	}
}
