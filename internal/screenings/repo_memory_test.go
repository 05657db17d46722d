package screenings

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	older := sampleScreening("old", 0)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	first := sampleScreening("new-0", 0)
	second := sampleScreening("new-1", 1)

	if err := repo.CreateBatch(ctx, []Screening{older}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := repo.CreateBatch(ctx, []Screening{second, first}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	items, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"new-0", "new-1", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}

	page, err := repo.List(ctx, 10, 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d", len(page))
	}
}

func TestMemoryRepoGetByID(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.CreateBatch(ctx, []Screening{sampleScreening("s-1", 0)}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	got, err := repo.GetByID(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Result.CandidateName != "Jane Doe" {
		t.Fatalf("unexpected screening: %+v", got)
	}
}

func TestMemoryRepoHonoursContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.CreateBatch(ctx, []Screening{sampleScreening("s-1", 0)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
