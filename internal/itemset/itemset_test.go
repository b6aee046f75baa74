package itemset

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

var (
	t0    = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	watch = catalog.Snapshot{ProductID: "p-4001", Name: "Fit Watch", Price: 3999}
	band  = catalog.Snapshot{ProductID: "p-4002", Name: "Smart Band", Price: 1799}
)

func TestAddIsIdempotent(t *testing.T) {
	s := Empty().Add(watch, t0).Add(band, t0.Add(time.Minute)).Add(watch, t0.Add(time.Hour))

	want := []Item{{Snapshot: watch, AddedAt: t0}, {Snapshot: band, AddedAt: t0.Add(time.Minute)}}
	if diff := cmp.Diff(want, s.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveAndContains(t *testing.T) {
	base := Empty().Add(watch, t0).Add(band, t0)
	s := base.Remove("p-4001")
	if s.Contains("p-4001") || !s.Contains("p-4002") {
		t.Fatalf("unexpected items after remove: %+v", s.Items)
	}
	if !base.Contains("p-4001") {
		t.Fatal("remove mutated the receiver")
	}
	if len(s.Remove("missing").Items) != 1 {
		t.Fatal("removing an unknown id must be a no-op")
	}
}

func TestClearAndFind(t *testing.T) {
	s := Empty().Add(watch, t0)
	if it, ok := s.Find("p-4001"); !ok || it.Name != "Fit Watch" {
		t.Fatalf("find failed: %+v %v", it, ok)
	}
	if len(s.Clear().Items) != 0 {
		t.Fatal("clear left items behind")
	}
}

func TestSanitize(t *testing.T) {
	in := State{Items: []Item{
		{Snapshot: watch},
		{Snapshot: catalog.Snapshot{ProductID: ""}},
		{Snapshot: watch},
		{Snapshot: band},
	}}
	want := State{Items: []Item{{Snapshot: watch}, {Snapshot: band}}}
	if diff := cmp.Diff(want, Sanitize(in)); diff != "" {
		t.Fatalf("sanitize mismatch (-want +got):\n%s", diff)
	}
}
