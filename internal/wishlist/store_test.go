package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/persist"
)

func TestWishlistPersists(t *testing.T) {
	ctx := context.Background()
	deps := persist.Deps{Backend: blobstore.NewMemory(), Scope: "visitor-1"}
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	snap := catalog.Snapshot{ProductID: "p-1", Name: "Phone", Price: 100}

	store := Open(ctx, deps)
	_, err := store.Add(ctx, snap, at)
	require.NoError(t, err)
	st, err := store.Add(ctx, snap, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, st.Items, 1)

	reopened := Open(ctx, deps)
	item, ok := reopened.Find("p-1")
	require.True(t, ok)
	assert.True(t, item.AddedAt.Equal(at))

	_, err = reopened.Remove(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, Open(ctx, deps).Contains("p-1"))
}

func TestWishlistClear(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, persist.Deps{Backend: blobstore.NewMemory(), Scope: "visitor-1"})
	_, err := store.Add(ctx, catalog.Snapshot{ProductID: "p-1"}, time.Now())
	require.NoError(t, err)

	st, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Items)
}
