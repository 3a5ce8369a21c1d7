package tui

import (
	"strings"

	"cms-cli/internal/model"
	"cms-cli/internal/store"
	"cms-cli/internal/tree"
)

type treeRow struct {
	category    model.Category
	depth       int
	hasChildren bool
	collapsed   bool
}

// flattenTree produces the visible rows of the category forest, honoring
// per-node collapse state. Children of a collapsed node are skipped.
func flattenTree(db *store.DB, collapsed map[string]bool) []treeRow {
	f := tree.Build(db.Categories)

	var out []treeRow
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		c := collapsed[n.Category.Name]
		out = append(out, treeRow{
			category:    n.Category,
			depth:       depth,
			hasChildren: len(n.Children) > 0,
			collapsed:   c,
		})
		if c {
			return
		}
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	for _, r := range f.Roots {
		walk(r, 0)
	}
	return out
}

// render the tree glyph column: [-] expanded, [+] collapsed, spaces for leaves.
func (r treeRow) icon() string {
	if !r.hasChildren {
		return "   "
	}
	if r.collapsed {
		return "[+]"
	}
	return "[-]"
}

func (r treeRow) line() string {
	return strings.Repeat("    ", r.depth) + r.icon() + " " + r.category.Name
}

// descendantNames collects the subtree below name (name excluded). Used by
// the parent picker to hide options that would create a cycle.
func descendantNames(db *store.DB, name string) map[string]bool {
	f := tree.Build(db.Categories)

	out := map[string]bool{}
	var collect func(n *tree.Node)
	collect = func(n *tree.Node) {
		for _, ch := range n.Children {
			out[ch.Category.Name] = true
			collect(ch)
		}
	}
	var find func(n *tree.Node) *tree.Node
	find = func(n *tree.Node) *tree.Node {
		if n.Category.Name == name {
			return n
		}
		for _, ch := range n.Children {
			if got := find(ch); got != nil {
				return got
			}
		}
		return nil
	}
	for _, r := range f.Roots {
		if got := find(r); got != nil {
			collect(got)
			break
		}
	}
	return out
}
