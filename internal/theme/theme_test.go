package theme

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/persist"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestDefaultsToDark(t *testing.T) {
	store := Open(context.Background(), persist.Deps{Backend: blobstore.NewMemory(), Scope: "v"})
	if store.Current() != enums.ThemeDark {
		t.Fatalf("expected dark default, got %s", store.Current())
	}
}

func TestCorruptOrUnknownThemeFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemory()
	if err := mem.Set(ctx, "v", StoreName, []byte(`{"theme":"sepia"}`)); err != nil {
		t.Fatal(err)
	}
	if got := Open(ctx, persist.Deps{Backend: mem, Scope: "v"}).Current(); got != enums.ThemeDark {
		t.Fatalf("expected dark for unknown theme, got %s", got)
	}

	if err := mem.Set(ctx, "v", StoreName, []byte(`{`)); err != nil {
		t.Fatal(err)
	}
	if got := Open(ctx, persist.Deps{Backend: mem, Scope: "v"}).Current(); got != enums.ThemeDark {
		t.Fatalf("expected dark for corrupt blob, got %s", got)
	}
}

func TestToggleAndSetPersist(t *testing.T) {
	ctx := context.Background()
	deps := persist.Deps{Backend: blobstore.NewMemory(), Scope: "v"}
	store := Open(ctx, deps)

	got, err := store.Toggle(ctx)
	if err != nil || got != enums.ThemeLight {
		t.Fatalf("toggle: %s %v", got, err)
	}
	if Open(ctx, deps).Current() != enums.ThemeLight {
		t.Fatal("toggle not persisted")
	}

	got, err = store.Set(ctx, enums.ThemeDark)
	if err != nil || got != enums.ThemeDark {
		t.Fatalf("set: %s %v", got, err)
	}

	got, err = store.Set(ctx, enums.Theme("neon"))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got != enums.ThemeDark || store.Current() != enums.ThemeDark {
		t.Fatalf("rejected set changed theme to %s", got)
	}
}
