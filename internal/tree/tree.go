// Package tree builds and renders the category forest.
//
// Roots are categories with no parent or a parent that no longer exists
// (a dangling parent link must not hide a subtree). Siblings are ordered by
// SortOrderIndex, then name.
package tree

import (
	"io"
	"iter"
	"sort"
	"strings"

	"cms-cli/internal/model"
)

type Node struct {
	Category model.Category
	Children []*Node
}

type Forest struct {
	Roots []*Node
}

// Build constructs the forest for a set of categories.
func Build(cats []model.Category) *Forest {
	nodes := make(map[string]*Node, len(cats))
	for _, c := range cats {
		nodes[c.Name] = &Node{Category: c}
	}

	f := &Forest{}
	for _, c := range cats {
		n := nodes[c.Name]
		parent := c.ParentName()
		if parent == "" || nodes[parent] == nil || parent == c.Name {
			f.Roots = append(f.Roots, n)
			continue
		}
		p := nodes[parent]
		p.Children = append(p.Children, n)
	}

	sortSiblings(f.Roots)
	for _, n := range nodes {
		sortSiblings(n.Children)
	}
	return f
}

func sortSiblings(ns []*Node) {
	sort.Slice(ns, func(i, j int) bool {
		a, b := ns[i].Category, ns[j].Category
		if a.SortOrderIndex != b.SortOrderIndex {
			return a.SortOrderIndex < b.SortOrderIndex
		}
		return a.Name < b.Name
	})
}

// Row is one entry of a pre-order traversal.
type Row struct {
	Category    model.Category
	Depth       int
	HasChildren bool
}

// All returns a lazy pre-order depth-first traversal of the forest. The
// sequence is restartable: each range starts a fresh walk. The walk visits
// each node exactly once, so it is bounded by the category count.
func (f *Forest) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		var walk func(n *Node, depth int) bool
		walk = func(n *Node, depth int) bool {
			if !yield(Row{Category: n.Category, Depth: depth, HasChildren: len(n.Children) > 0}) {
				return false
			}
			for _, ch := range n.Children {
				if !walk(ch, depth+1) {
					return false
				}
			}
			return true
		}
		for _, r := range f.Roots {
			if !walk(r, 0) {
				return
			}
		}
	}
}

// Render writes the forest as an indented text tree, two spaces per level.
func Render(w io.Writer, f *Forest) error {
	for row := range f.All() {
		line := strings.Repeat("  ", row.Depth) + row.Category.Name + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderString renders the forest for a category set in one call.
func RenderString(cats []model.Category) string {
	var b strings.Builder
	_ = Render(&b, Build(cats))
	return b.String()
}
