package store

import (
	"encoding/json"
	"testing"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := New()
	Seed(db)
	cats, conts := len(db.Categories), len(db.Contents)

	db.Clear()
	if len(db.Categories) != 0 || len(db.Contents) != 0 {
		t.Fatalf("clear left data behind")
	}

	Seed(db)
	if len(db.Categories) != cats || len(db.Contents) != conts {
		t.Fatalf("reseed sizes differ: %d/%d vs %d/%d", len(db.Categories), len(db.Contents), cats, conts)
	}
}

func TestFindCategory_TrimsAndMutatesInPlace(t *testing.T) {
	db := New()
	Seed(db)

	c, ok := db.FindCategory("  Home ")
	if !ok {
		t.Fatalf("Home not found")
	}
	c.SortOrderIndex = 42

	again, _ := db.FindCategory("Home")
	if again.SortOrderIndex != 42 {
		t.Fatalf("pointer did not alias store: %d", again.SortOrderIndex)
	}
}

func TestChildrenOfAndMaxSiblingOrder(t *testing.T) {
	db := New()
	Seed(db)

	kids := db.ChildrenOf("Sacraments")
	if len(kids) != 3 {
		t.Fatalf("Sacraments children = %d, want 3", len(kids))
	}

	max, ok := db.MaxSiblingOrder("")
	if !ok || max != 5 {
		t.Fatalf("root max order = %d (%v), want 5", max, ok)
	}
	if _, ok := db.MaxSiblingOrder("High School"); ok {
		t.Fatalf("expected no siblings under a leaf")
	}
}

func TestRemoveCategory(t *testing.T) {
	db := New()
	Seed(db)
	n := len(db.Categories)

	if !db.RemoveCategory("Choir") {
		t.Fatalf("remove reported not found")
	}
	if len(db.Categories) != n-1 {
		t.Fatalf("size after remove: %d", len(db.Categories))
	}
	if db.RemoveCategory("Choir") {
		t.Fatalf("second remove should report not found")
	}
}

func TestLoadJSON_RoundTrip(t *testing.T) {
	db := New()
	Seed(db)

	bare, err := json.Marshal(db)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored := New()
	if err := restored.LoadJSON(bare); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if len(restored.Categories) != len(db.Categories) || len(restored.Contents) != len(db.Contents) {
		t.Fatalf("round trip sizes: %d/%d, want %d/%d",
			len(restored.Categories), len(restored.Contents), len(db.Categories), len(db.Contents))
	}
	staff, ok := restored.FindCategory("Staff")
	if !ok || staff.ParentName() != "About" {
		t.Fatalf("parent link lost in round trip: %+v", staff)
	}

	// The {"data": ...} envelope the export commands emit works too.
	enveloped, err := json.Marshal(map[string]any{"data": db})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	fromEnvelope := New()
	if err := fromEnvelope.LoadJSON(enveloped); err != nil {
		t.Fatalf("LoadJSON envelope: %v", err)
	}
	if len(fromEnvelope.Categories) != len(db.Categories) {
		t.Fatalf("envelope load sizes: %d, want %d", len(fromEnvelope.Categories), len(db.Categories))
	}
}

func TestLoadJSON_BadInput(t *testing.T) {
	db := New()
	Seed(db)
	n := len(db.Categories)

	if err := db.LoadJSON([]byte("{oops")); err == nil {
		t.Fatalf("expected parse error")
	}
	if len(db.Categories) != n {
		t.Fatalf("failed load changed the store")
	}
}

func TestSortedListings(t *testing.T) {
	db := New()
	Seed(db)

	cats := db.SortedCategories()
	for i := 1; i < len(cats); i++ {
		if cats[i-1].Name > cats[i].Name {
			t.Fatalf("categories not sorted at %d: %q > %q", i, cats[i-1].Name, cats[i].Name)
		}
	}

	conts := db.SortedContents()
	for i := 1; i < len(conts); i++ {
		if conts[i-1].Name > conts[i].Name {
			t.Fatalf("contents not sorted at %d", i)
		}
	}
}
