package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func decodeEnvelope(t *testing.T, stdout string) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v\nstdout:\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("envelope missing data key:\n%s", stdout)
	}
	return env
}

func TestCategoriesList_SeededEnvelope(t *testing.T) {
	stdout, _, err := runCmd(t, "categories", "list")
	if err != nil {
		t.Fatalf("categories list: %v", err)
	}
	env := decodeEnvelope(t, stdout)
	data, ok := env["data"].([]any)
	if !ok || len(data) != 15 {
		t.Fatalf("expected 15 seeded categories, got %T len %d", env["data"], len(data))
	}
}

func TestCategoriesAdd_EmptyStore(t *testing.T) {
	stdout, _, err := runCmd(t, "--empty", "categories", "add", "--name", "Home")
	if err != nil {
		t.Fatalf("categories add: %v", err)
	}
	env := decodeEnvelope(t, stdout)
	c, _ := env["data"].(map[string]any)
	if c["name"] != "Home" {
		t.Fatalf("unexpected data: %#v", env["data"])
	}
}

func TestCategoriesAdd_DuplicateFails(t *testing.T) {
	_, stderr, err := runCmd(t, "categories", "add", "--name", "Home")
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
	if !strings.Contains(stderr, "category already exists: Home") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCategoriesGet_NotFound(t *testing.T) {
	_, stderr, err := runCmd(t, "--empty", "categories", "get", "Nope")
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if !strings.Contains(stderr, "category not found: Nope") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestTree_TextOutput(t *testing.T) {
	stdout, _, err := runCmd(t, "tree")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.HasPrefix(stdout, "Home\n") {
		t.Fatalf("tree output starts with %q", stdout[:min(len(stdout), 20)])
	}
	if !strings.Contains(stdout, "\n  Staff\n") {
		t.Fatalf("tree output missing indented child:\n%s", stdout)
	}
}

func TestTree_JSONRows(t *testing.T) {
	stdout, _, err := runCmd(t, "tree", "--json")
	if err != nil {
		t.Fatalf("tree --json: %v", err)
	}
	env := decodeEnvelope(t, stdout)
	rows, ok := env["data"].([]any)
	if !ok || len(rows) != 15 {
		t.Fatalf("expected 15 rows, got %T len %d", env["data"], len(rows))
	}
}

func TestContentsSet_UnknownField(t *testing.T) {
	_, stderr, err := runCmd(t, "contents", "set", "welcome", "--field", "author", "--value", "x")
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(stderr, "unknown field: author") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestImport_ReadsEnvelopeFromStdin(t *testing.T) {
	payload := `{"data":{"categories":[{"name":"Home","sortOrderIndex":0},` +
		`{"name":"About","parent":"Home","sortOrderIndex":0}],` +
		`"contents":[{"name":"welcome","categories":["Home"],"archived":false}]}}`

	cmd := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(payload))
	cmd.SetArgs([]string{"--empty", "import"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("import: %v\nstderr: %s", err, errOut.String())
	}

	env := decodeEnvelope(t, out.String())
	data, _ := env["data"].(map[string]any)
	if data["categories"] != float64(2) || data["contents"] != float64(1) {
		t.Fatalf("import counts: %#v", data)
	}
}

func TestExport_ContainsBothStores(t *testing.T) {
	stdout, _, err := runCmd(t, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	env := decodeEnvelope(t, stdout)
	data, _ := env["data"].(map[string]any)
	if _, ok := data["categories"]; !ok {
		t.Fatalf("export missing categories: %#v", data)
	}
	if _, ok := data["contents"]; !ok {
		t.Fatalf("export missing contents: %#v", data)
	}
}

func TestDocs_ListsTopics(t *testing.T) {
	stdout, _, err := runCmd(t, "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	env := decodeEnvelope(t, stdout)
	data, _ := env["data"].(map[string]any)
	topics, _ := data["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("no docs topics: %#v", data)
	}
}
