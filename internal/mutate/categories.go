package mutate

import (
	"sort"
	"strings"

	"cms-cli/internal/model"
	"cms-cli/internal/store"
)

// AddCategory creates a category. parent may be nil for a root. When order
// is nil the category is placed after its last sibling.
func AddCategory(db *store.DB, name string, parent *string, order *int) (model.Category, error) {
	name = strings.TrimSpace(name)
	if _, ok := db.FindCategory(name); ok {
		return model.Category{}, DuplicateNameError{Kind: "category", Name: name}
	}
	parentName := ""
	if parent != nil {
		parentName = strings.TrimSpace(*parent)
	}
	if parentName != "" {
		if parentName == name {
			return model.Category{}, InvalidParentError{Name: name, Parent: parentName, Reason: "a category cannot be its own parent"}
		}
		if _, ok := db.FindCategory(parentName); !ok {
			return model.Category{}, InvalidParentError{Name: name, Parent: parentName, Reason: "no such category"}
		}
	}

	c := model.Category{Name: name}
	if parentName != "" {
		c.Parent = &parentName
	}
	if order != nil {
		c.SortOrderIndex = *order
	} else if max, ok := db.MaxSiblingOrder(parentName); ok {
		c.SortOrderIndex = max + 1
	}
	db.Categories = append(db.Categories, c)
	return c, nil
}

// SetCategoryParent re-parents a category. parent nil makes it a root.
// Rejects self-parenting, unknown parents, and any change that would make
// the category its own ancestor.
func SetCategoryParent(db *store.DB, name string, parent *string) (model.Category, error) {
	name = strings.TrimSpace(name)
	c, ok := db.FindCategory(name)
	if !ok {
		return model.Category{}, NotFoundError{Kind: "category", Name: name}
	}

	if parent == nil || strings.TrimSpace(*parent) == "" {
		c.Parent = nil
		return *c, nil
	}

	parentName := strings.TrimSpace(*parent)
	if parentName == name {
		return model.Category{}, InvalidParentError{Name: name, Parent: parentName, Reason: "a category cannot be its own parent"}
	}
	if _, ok := db.FindCategory(parentName); !ok {
		return model.Category{}, InvalidParentError{Name: name, Parent: parentName, Reason: "no such category"}
	}
	if isAncestor(db, name, parentName) {
		return model.Category{}, CycleError{Name: name, Parent: parentName}
	}

	c.Parent = &parentName
	return *c, nil
}

// isAncestor reports whether ancestor appears on the parent chain starting
// at start (start included). The walk keeps a visited set so it terminates
// even if the store already held a corrupt chain.
func isAncestor(db *store.DB, ancestor, start string) bool {
	visited := map[string]bool{}
	cur := start
	for cur != "" && !visited[cur] {
		if cur == ancestor {
			return true
		}
		visited[cur] = true
		c, ok := db.FindCategory(cur)
		if !ok {
			return false
		}
		cur = c.ParentName()
	}
	return false
}

// RenameCategory renames a category and rewrites its children's parent
// links so the subtree stays attached.
func RenameCategory(db *store.DB, oldName, newName string) (model.Category, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	c, ok := db.FindCategory(oldName)
	if !ok {
		return model.Category{}, NotFoundError{Kind: "category", Name: oldName}
	}
	if newName == oldName {
		return *c, nil
	}
	if _, ok := db.FindCategory(newName); ok {
		return model.Category{}, DuplicateNameError{Kind: "category", Name: newName}
	}

	c.Name = newName
	for i := range db.Categories {
		if db.Categories[i].Parent != nil && *db.Categories[i].Parent == oldName {
			db.Categories[i].Parent = &newName
		}
	}
	return *c, nil
}

// SetCategoryOrder assigns an explicit sort position among siblings.
func SetCategoryOrder(db *store.DB, name string, order int) (model.Category, error) {
	c, ok := db.FindCategory(strings.TrimSpace(name))
	if !ok {
		return model.Category{}, NotFoundError{Kind: "category", Name: strings.TrimSpace(name)}
	}
	c.SortOrderIndex = order
	return *c, nil
}

// MoveCategory shifts a category one step among its siblings (delta -1 or
// +1) by swapping SortOrderIndex with the neighbor in display order.
// Moving past either end is a no-op.
func MoveCategory(db *store.DB, name string, delta int) (model.Category, error) {
	name = strings.TrimSpace(name)
	c, ok := db.FindCategory(name)
	if !ok {
		return model.Category{}, NotFoundError{Kind: "category", Name: name}
	}

	sibs := siblingsInOrder(db, c.ParentName())
	idx := -1
	for i, s := range sibs {
		if s == name {
			idx = i
			break
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(sibs) {
		return *c, nil
	}

	other, _ := db.FindCategory(sibs[target])
	// Equal indexes would swap into a no-op; force distinct positions first.
	if other.SortOrderIndex == c.SortOrderIndex {
		for i, s := range sibs {
			sc, _ := db.FindCategory(s)
			sc.SortOrderIndex = i
		}
	}
	c.SortOrderIndex, other.SortOrderIndex = other.SortOrderIndex, c.SortOrderIndex
	return *c, nil
}

func siblingsInOrder(db *store.DB, parent string) []string {
	type sib struct {
		name  string
		order int
	}
	var sibs []sib
	for _, c := range db.Categories {
		if c.ParentName() == parent {
			sibs = append(sibs, sib{name: c.Name, order: c.SortOrderIndex})
		}
	}
	// Order then name, matching tree display order.
	sort.Slice(sibs, func(i, j int) bool {
		if sibs[i].order != sibs[j].order {
			return sibs[i].order < sibs[j].order
		}
		return sibs[i].name < sibs[j].name
	})
	out := make([]string, len(sibs))
	for i, s := range sibs {
		out[i] = s.name
	}
	return out
}

// DeleteCategory removes a category. The policy decides what happens to
// child categories; content is never cascade-deleted.
func DeleteCategory(db *store.DB, name string, policy OrphanPolicy) error {
	name = strings.TrimSpace(name)
	c, ok := db.FindCategory(name)
	if !ok {
		return NotFoundError{Kind: "category", Name: name}
	}

	children := db.ChildrenOf(name)
	if len(children) > 0 {
		switch policy {
		case OrphanForbid:
			return HasChildrenError{Name: name, Children: len(children)}
		case OrphanPromote:
			grandparent := c.Parent
			for i := range db.Categories {
				if db.Categories[i].Parent != nil && *db.Categories[i].Parent == name {
					if grandparent == nil {
						db.Categories[i].Parent = nil
					} else {
						gp := *grandparent
						db.Categories[i].Parent = &gp
					}
				}
			}
		default: // OrphanDetach
			for i := range db.Categories {
				if db.Categories[i].Parent != nil && *db.Categories[i].Parent == name {
					db.Categories[i].Parent = nil
				}
			}
		}
	}

	db.RemoveCategory(name)
	return nil
}
