package cli

import (
	"bytes"
	"strings"
	"testing"

	"cms-cli/internal/store"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	log, err := store.OpenEventLog()
	if err != nil {
		t.Fatalf("OpenEventLog: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	app := &App{DB: store.New(), Events: log}
	out := &bytes.Buffer{}
	return &shell{app: app, out: out}, out
}

func TestShell_AddAndTreeView(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("add_category About Home")
	out.Reset()
	sh.dispatch("tree_view")

	if got := out.String(); got != "Home\n  About\n" {
		t.Fatalf("tree_view = %q", got)
	}
}

func TestShell_CycleRejectedAndStoreUnchanged(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("add_category About Home")
	out.Reset()
	sh.dispatch("update_category Home About")

	if !strings.Contains(out.String(), "descendant") {
		t.Fatalf("expected cycle error, got %q", out.String())
	}
	home, _ := sh.app.DB.FindCategory("Home")
	if home.Parent != nil {
		t.Fatalf("store changed after rejected cycle")
	}
}

func TestShell_ContentSurvivesCategoryDelete(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("add_content Welcome Home")
	sh.dispatch("delete_category Home")
	out.Reset()
	sh.dispatch("get_content Welcome")

	if got := strings.TrimSpace(out.String()); got != "Welcome: categories=Home archived=false" {
		t.Fatalf("get_content after delete = %q", got)
	}
}

func TestShell_UsageAndUnknown(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category")
	if !strings.Contains(out.String(), "usage: add_category <name> [parent]") {
		t.Fatalf("missing usage line: %q", out.String())
	}

	out.Reset()
	sh.dispatch("update_content onlyone")
	if !strings.Contains(out.String(), "usage: update_content") {
		t.Fatalf("missing usage line: %q", out.String())
	}

	out.Reset()
	sh.dispatch("frobnicate")
	if !strings.Contains(out.String(), "unknown command: frobnicate") {
		t.Fatalf("missing unknown-command line: %q", out.String())
	}
}

func TestShell_SeedClearSeedTreeIdentical(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("seed_data")
	out.Reset()
	sh.dispatch("tree_view")
	first := out.String()

	sh.dispatch("clear_all")
	sh.dispatch("seed_data")
	out.Reset()
	sh.dispatch("tree_view")
	second := out.String()

	if first != second {
		t.Fatalf("seeded tree changed across reset:\n%s\n---\n%s", first, second)
	}
	if !strings.HasPrefix(first, "Home\n") {
		t.Fatalf("unexpected seeded tree:\n%s", first)
	}
}

func TestShell_ClearAllThenTreeView(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("seed_data")
	sh.dispatch("clear_all")
	out.Reset()
	sh.dispatch("tree_view")

	if got := strings.TrimSpace(out.String()); got != "No categories." {
		t.Fatalf("tree_view on empty store = %q", got)
	}
}

func TestShell_UpdateContentFieldValidation(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("add_content welcome Home")

	out.Reset()
	sh.dispatch("update_content welcome author Bob")
	if !strings.Contains(out.String(), "unknown field: author") {
		t.Fatalf("expected unknown field error, got %q", out.String())
	}

	out.Reset()
	sh.dispatch("update_content welcome archived true")
	if !strings.Contains(out.String(), "Content updated.") {
		t.Fatalf("expected update message, got %q", out.String())
	}
	c, _ := sh.app.DB.FindContent("welcome")
	if !c.Archived {
		t.Fatalf("archived flag not set")
	}
}

func TestShell_TreeEditNoneClearsParent(t *testing.T) {
	sh, _ := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("add_category About Home")
	sh.dispatch("tree_edit About none")

	about, _ := sh.app.DB.FindCategory("About")
	if about.Parent != nil {
		t.Fatalf("tree_edit none did not clear parent")
	}
}

func TestShell_TreeEditWithoutBothArgsOpensEditor(t *testing.T) {
	sh, _ := newTestShell(t)
	launches := 0
	sh.editor = func() error { launches++; return nil }

	sh.dispatch("tree_edit")
	sh.dispatch("tree_edit About")
	if launches != 2 {
		t.Fatalf("editor launched %d times, want 2", launches)
	}

	sh.dispatch("add_category Home")
	sh.dispatch("add_category About Home")
	sh.dispatch("tree_edit About none")
	if launches != 2 {
		t.Fatalf("two-argument tree_edit opened the editor")
	}
	about, _ := sh.app.DB.FindCategory("About")
	if about.Parent != nil {
		t.Fatalf("two-argument tree_edit did not reparent")
	}
}

func TestShell_ExportImportRoundTrip(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("seed_data")
	out.Reset()
	sh.dispatch("tree_view")
	before := out.String()

	out.Reset()
	sh.dispatch("export")
	exported := strings.TrimSpace(out.String())

	sh.dispatch("clear_all")
	out.Reset()
	sh.dispatch("import '" + exported + "'")
	if !strings.Contains(out.String(), "Imported 15 categories and 5 contents.") {
		t.Fatalf("import message: %q", out.String())
	}

	out.Reset()
	sh.dispatch("tree_view")
	if out.String() != before {
		t.Fatalf("tree differs after round trip:\n%s\n---\n%s", before, out.String())
	}
}

func TestShell_ImportRejectsBadJSON(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	out.Reset()
	sh.dispatch("import '{not json'")
	if !strings.Contains(out.String(), "parse import") {
		t.Fatalf("expected parse error, got %q", out.String())
	}
	if _, ok := sh.app.DB.FindCategory("Home"); !ok {
		t.Fatalf("failed import changed the store")
	}
}

func TestShell_EventsReflectMutations(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatch("add_category Home")
	sh.dispatch("delete_category Home")
	out.Reset()
	sh.dispatch("events")

	got := out.String()
	if !strings.Contains(got, "category.add") || !strings.Contains(got, "category.delete") {
		t.Fatalf("events output missing entries:\n%s", got)
	}
}

func TestRunShell_ExitAndEOF(t *testing.T) {
	log, err := store.OpenEventLog()
	if err != nil {
		t.Fatalf("OpenEventLog: %v", err)
	}
	defer log.Close()
	app := &App{DB: store.New(), Events: log}

	out := &bytes.Buffer{}
	if err := runShell(app, strings.NewReader("add_category Home\nexit\n"), out); err != nil {
		t.Fatalf("runShell: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("missing goodbye: %q", out.String())
	}

	// EOF without exit also leaves cleanly.
	out.Reset()
	if err := runShell(app, strings.NewReader("list_categories\n"), out); err != nil {
		t.Fatalf("runShell EOF: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("missing goodbye on EOF: %q", out.String())
	}
}
