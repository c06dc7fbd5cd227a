package findings

import (
	"context"
	"errors"
	"testing"
	"time"

	"osintkit/internal/adapters/memory"
	"osintkit/internal/domain"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	ent, err := store.UpsertEntity(ctx, "", domain.EntityDomain, "example.com", map[string]any{}, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	rec := New(store)
	for i := 0; i < 3; i++ {
		if _, err := rec.Record(ctx, ent.ID, "whois", "domain_info", 1.5, map[string]any{"n": i}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	fs, _ := store.ListFindings(ctx, ent.ID)
	if len(fs) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(fs))
	}
	seen := map[string]bool{}
	for _, f := range fs {
		if seen[f.ID] {
			t.Errorf("duplicate finding id %s", f.ID)
		}
		seen[f.ID] = true
		if f.Confidence != 1.5 {
			t.Errorf("confidence clamped to %v", f.Confidence)
		}
		if f.CreatedAt.IsZero() {
			t.Error("created_at not set")
		}
	}
}

func TestRecordUnknownEntity(t *testing.T) {
	t.Parallel()

	_, err := New(memory.New()).Record(context.Background(), "missing", "ssl", "certificate_transparency", 1, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
