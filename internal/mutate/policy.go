package mutate

import "fmt"

// OrphanPolicy decides what happens to child categories when their parent is
// deleted. Content is never affected: content category references are
// advisory and survive category deletion.
type OrphanPolicy string

const (
	// OrphanDetach nulls the children's parent links, making them roots.
	// This is the default; the tree builder already treats a category with
	// a missing parent as a root, so detaching matches what a reader of the
	// tree would have seen anyway.
	OrphanDetach OrphanPolicy = "detach"

	// OrphanPromote reparents children onto the deleted category's parent.
	OrphanPromote OrphanPolicy = "promote"

	// OrphanForbid refuses to delete a category that still has children.
	OrphanForbid OrphanPolicy = "forbid"
)

func DefaultOrphanPolicy() OrphanPolicy { return OrphanDetach }

func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch OrphanPolicy(s) {
	case OrphanDetach, OrphanPromote, OrphanForbid:
		return OrphanPolicy(s), nil
	case "":
		return DefaultOrphanPolicy(), nil
	}
	return "", fmt.Errorf("unknown orphan policy: %q (want detach|promote|forbid)", s)
}
