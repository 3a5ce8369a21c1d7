package tree

import (
	"strings"
	"testing"

	"cms-cli/internal/model"
	"cms-cli/internal/store"
)

func strPtr(s string) *string { return &s }

func TestBuild_MissingParentBecomesRoot(t *testing.T) {
	cats := []model.Category{
		{Name: "A"},
		{Name: "B", Parent: strPtr("Gone")},
		{Name: "C", Parent: strPtr("A")},
	}
	f := Build(cats)
	if len(f.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(f.Roots))
	}
}

func TestBuild_SiblingOrder(t *testing.T) {
	cats := []model.Category{
		{Name: "Zeta", SortOrderIndex: 0},
		{Name: "Alpha", SortOrderIndex: 1},
		{Name: "Mid2", SortOrderIndex: 2},
		{Name: "Mid1", SortOrderIndex: 2},
	}
	f := Build(cats)
	var got []string
	for _, r := range f.Roots {
		got = append(got, r.Category.Name)
	}
	want := []string{"Zeta", "Alpha", "Mid1", "Mid2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sibling order %v, want %v", got, want)
		}
	}
}

func TestRender_IndentedExample(t *testing.T) {
	cats := []model.Category{
		{Name: "Home"},
		{Name: "About", Parent: strPtr("Home")},
	}
	got := RenderString(cats)
	want := "Home\n  About\n"
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestAll_PreOrderAndBounded(t *testing.T) {
	db := store.New()
	store.Seed(db)

	f := Build(db.Categories)
	seen := map[string]bool{}
	count := 0
	for row := range f.All() {
		if seen[row.Category.Name] {
			t.Fatalf("node visited twice: %s", row.Category.Name)
		}
		seen[row.Category.Name] = true
		count++
		if count > len(db.Categories) {
			t.Fatalf("traversal exceeded category count")
		}
	}
	if count != len(db.Categories) {
		t.Fatalf("visited %d nodes, want %d", count, len(db.Categories))
	}
}

func TestAll_LazyAndRestartable(t *testing.T) {
	db := store.New()
	store.Seed(db)
	f := Build(db.Categories)

	// Early break must stop the walk cleanly.
	first := ""
	for row := range f.All() {
		first = row.Category.Name
		break
	}
	if first != "Home" {
		t.Fatalf("first pre-order node = %q, want Home", first)
	}

	// Ranging again restarts from the top.
	again := ""
	for row := range f.All() {
		again = row.Category.Name
		break
	}
	if again != first {
		t.Fatalf("restarted traversal began at %q, want %q", again, first)
	}
}

func TestSeedRenderIdempotent(t *testing.T) {
	db := store.New()

	store.Seed(db)
	first := RenderString(db.Categories)

	db.Clear()
	store.Seed(db)
	second := RenderString(db.Categories)

	if first != second {
		t.Fatalf("seed/clear/seed render differs:\n%s\n---\n%s", first, second)
	}
	if !strings.HasPrefix(first, "Home\n") {
		t.Fatalf("unexpected seed render start:\n%s", first)
	}
}

func TestRender_DepthsFollowParents(t *testing.T) {
	db := store.New()
	store.Seed(db)
	f := Build(db.Categories)

	depth := map[string]int{}
	for row := range f.All() {
		depth[row.Category.Name] = row.Depth
	}
	if depth["Sacraments"] != 0 || depth["Baptism"] != 1 || depth["High School"] != 2 {
		t.Fatalf("unexpected depths: %v", depth)
	}
}
