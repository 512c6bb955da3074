package planstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	domainPlan "github.com/studibuch/riona/domains/plan"
	pkgError "github.com/studibuch/riona/pkg/error"
)

func testPost(id string, at time.Time) domainPlan.Post {
	return domainPlan.Post{
		ID:          id,
		Kind:        domainPlan.KindTopic,
		Title:       "post " + id,
		ScheduledAt: at,
		Status:      domainPlan.StatusScheduled,
	}
}

func TestFileStore_LoadMissingFileIsEmptyPlan(t *testing.T) {
	store := NewFileStore(t.TempDir())

	plan, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(plan) != 0 {
		t.Fatalf("Load() expected empty plan, got %d posts", len(plan))
	}
}

func TestFileStore_LoadUnparseableIsStorageError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "content_plan.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(dir)
	if _, err := store.Load(); err == nil {
		t.Fatalf("Load() expected error for corrupt file, got nil")
	} else if _, ok := err.(pkgError.StorageError); !ok {
		t.Fatalf("Load() expected StorageError, got %T", err)
	}
}

func TestFileStore_SaveSortsByScheduledAt(t *testing.T) {
	store := NewFileStore(t.TempDir())
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	plan := domainPlan.ContentPlan{
		testPost("c", base.Add(48*time.Hour)),
		testPost("a", base),
		testPost("b", base.Add(24*time.Hour)),
	}
	if err := store.Save(plan); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	for i := 1; i < len(loaded); i++ {
		if loaded[i].ScheduledAt.Before(loaded[i-1].ScheduledAt) {
			t.Fatalf("plan not sorted: %s before %s", loaded[i].ID, loaded[i-1].ID)
		}
	}
	if loaded[0].ID != "a" || loaded[2].ID != "c" {
		t.Fatalf("unexpected order: %s, %s, %s", loaded[0].ID, loaded[1].ID, loaded[2].ID)
	}
}

func TestFileStore_UpsertByPostID(t *testing.T) {
	store := NewFileStore(t.TempDir())
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := store.Save(domainPlan.ContentPlan{testPost("p1", base)}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	updated, err := store.UpsertByPostID("p1", func(p *domainPlan.Post) {
		p.Status = domainPlan.StatusPublished
	})
	if err != nil {
		t.Fatalf("UpsertByPostID() unexpected error: %v", err)
	}
	if updated.Status != domainPlan.StatusPublished {
		t.Fatalf("UpsertByPostID() status = %q, want %q", updated.Status, domainPlan.StatusPublished)
	}

	loaded, _ := store.Load()
	if loaded[0].Status != domainPlan.StatusPublished {
		t.Fatalf("mutation not persisted, status = %q", loaded[0].Status)
	}
}

func TestFileStore_UpsertByPostID_NotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.UpsertByPostID("missing", func(p *domainPlan.Post) {})
	if err == nil {
		t.Fatalf("UpsertByPostID() expected error for unknown id, got nil")
	}
	if _, ok := err.(pkgError.NotFoundError); !ok {
		t.Fatalf("UpsertByPostID() expected NotFoundError, got %T", err)
	}
}

// Concurrent Update calls must not lose each other's additions.
func TestFileStore_UpdateSerializesMutations(t *testing.T) {
	store := NewFileStore(t.TempDir())
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Update(func(p domainPlan.ContentPlan) (domainPlan.ContentPlan, error) {
				return append(p, testPost(string(rune('a'+n)), base.Add(time.Duration(n)*time.Hour))), nil
			})
			if err != nil {
				t.Errorf("Update() unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(loaded) != writers {
		t.Fatalf("expected %d posts after concurrent updates, got %d", writers, len(loaded))
	}
}
