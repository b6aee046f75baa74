package saved

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

func TestSavedItemsSurviveReload(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemory()
	deps := persist.Deps{Backend: mem, Scope: "visitor-9"}

	store := Open(ctx, deps)
	if _, err := store.Add(ctx, catalog.Snapshot{ProductID: "p-5001", Name: "Air Fryer"}, time.Now()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok, _ := mem.Get(ctx, "visitor-9", StoreName); !ok {
		t.Fatalf("expected blob under %q", StoreName)
	}

	reopened := Open(ctx, deps)
	if !reopened.Contains("p-5001") {
		t.Fatal("saved item lost across reload")
	}
	if _, err := reopened.Remove(ctx, "p-5001"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(reopened.State().Items) != 0 {
		t.Fatalf("expected empty list, got %+v", reopened.State().Items)
	}
}

func TestSavedIgnoresDuplicateAdds(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, persist.Deps{Backend: blobstore.NewMemory(), Scope: "visitor-9"})
	snap := catalog.Snapshot{ProductID: "p-5001"}
	for i := 0; i < 3; i++ {
		if _, err := store.Add(ctx, snap, time.Now()); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if got := len(store.State().Items); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
}
