package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestSetValidates(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		field   string
	}{
		{name: "missing label", profile: Profile{Pincode: "110001"}, field: "label"},
		{name: "short pincode", profile: Profile{Label: "Home", Pincode: "11001"}, field: "pincode"},
		{name: "letters in pincode", profile: Profile{Label: "Home", Pincode: "11000A"}, field: "pincode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := State{}.Set(tt.profile)
			require.Error(t, err)
			assert.Nil(t, st.Profile)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Contains(t, typed.Details(), tt.field)
		})
	}
}

func TestSetTrimsInput(t *testing.T) {
	st, err := State{}.Set(Profile{Label: " Home ", Pincode: " 560001 "})
	require.NoError(t, err)
	assert.Equal(t, Profile{Label: "Home", Pincode: "560001"}, *st.Profile)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	deps := persist.Deps{Backend: blobstore.NewMemory(), Scope: "visitor-1"}
	store := Open(ctx, deps)

	_, ok := store.Profile()
	assert.False(t, ok)

	_, err := store.Set(ctx, Profile{Label: "Office", Pincode: "400001", Address: "Fort"})
	require.NoError(t, err)

	got, ok := Open(ctx, deps).Profile()
	require.True(t, ok)
	assert.Equal(t, "400001", got.Pincode)

	require.NoError(t, store.Clear(ctx))
	_, ok = Open(ctx, deps).Profile()
	assert.False(t, ok)
}

func TestInvalidSetKeepsPreviousProfile(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, persist.Deps{Backend: blobstore.NewMemory(), Scope: "visitor-1"})
	_, err := store.Set(ctx, Profile{Label: "Home", Pincode: "110001"})
	require.NoError(t, err)

	_, err = store.Set(ctx, Profile{Label: "Home", Pincode: "bad"})
	require.Error(t, err)

	got, _ := store.Profile()
	assert.Equal(t, "110001", got.Pincode)
}

func TestSanitizeDropsInvalidProfile(t *testing.T) {
	assert.Nil(t, Sanitize(State{Profile: &Profile{Label: "x", Pincode: "1"}}).Profile)
	assert.NotNil(t, Sanitize(State{Profile: &Profile{Label: "x", Pincode: "123456"}}).Profile)
}
