package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

type DuplicateNameError struct {
	Kind string
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Name)
}

type InvalidParentError struct {
	Name   string
	Parent string
	Reason string
}

func (e InvalidParentError) Error() string {
	return fmt.Sprintf("invalid parent %q for %q: %s", e.Parent, e.Name, e.Reason)
}

type CycleError struct {
	Name   string
	Parent string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("cannot set parent of %q to %q: %q is a descendant", e.Name, e.Parent, e.Parent)
}

type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}

// HasChildrenError is returned by DeleteCategory under OrphanForbid.
type HasChildrenError struct {
	Name     string
	Children int
}

func (e HasChildrenError) Error() string {
	return fmt.Sprintf("category %q has %d child categories; move or delete them first", e.Name, e.Children)
}
