package mutate

import (
	"fmt"
	"strconv"
	"strings"

	"cms-cli/internal/model"
	"cms-cli/internal/store"
)

// Known fields for UpdateContentField. The schema is closed: anything else
// is an UnknownFieldError.
const (
	FieldCategories = "categories"
	FieldArchived   = "archived"
)

// AddContent creates a content record. Every referenced category must exist
// at creation time; the references are not revalidated afterwards.
func AddContent(db *store.DB, name string, categories []string) (model.Content, error) {
	name = strings.TrimSpace(name)
	if _, ok := db.FindContent(name); ok {
		return model.Content{}, DuplicateNameError{Kind: "content", Name: name}
	}
	cats, err := normalizeCategoryRefs(db, categories)
	if err != nil {
		return model.Content{}, err
	}

	c := model.Content{Name: name, Categories: cats}
	db.Contents = append(db.Contents, c)
	return c, nil
}

// UpdateContentField updates one field by name, validating the field
// against the known schema and the value against the field's type.
func UpdateContentField(db *store.DB, name, field, value string) (model.Content, error) {
	name = strings.TrimSpace(name)
	c, ok := db.FindContent(name)
	if !ok {
		return model.Content{}, NotFoundError{Kind: "content", Name: name}
	}

	switch strings.TrimSpace(field) {
	case FieldCategories:
		cats, err := normalizeCategoryRefs(db, strings.Split(value, ","))
		if err != nil {
			return model.Content{}, err
		}
		c.Categories = cats
	case FieldArchived:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return model.Content{}, fmt.Errorf("field %s wants true or false, got %q", FieldArchived, value)
		}
		c.Archived = b
	default:
		return model.Content{}, UnknownFieldError{Field: strings.TrimSpace(field)}
	}
	return *c, nil
}

// SetContentArchived flips the archived flag directly (TUI convenience).
func SetContentArchived(db *store.DB, name string, archived bool) (model.Content, error) {
	c, ok := db.FindContent(strings.TrimSpace(name))
	if !ok {
		return model.Content{}, NotFoundError{Kind: "content", Name: strings.TrimSpace(name)}
	}
	c.Archived = archived
	return *c, nil
}

// RenameContent renames a content record.
func RenameContent(db *store.DB, oldName, newName string) (model.Content, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	c, ok := db.FindContent(oldName)
	if !ok {
		return model.Content{}, NotFoundError{Kind: "content", Name: oldName}
	}
	if newName == oldName {
		return *c, nil
	}
	if _, ok := db.FindContent(newName); ok {
		return model.Content{}, DuplicateNameError{Kind: "content", Name: newName}
	}
	c.Name = newName
	return *c, nil
}

func DeleteContent(db *store.DB, name string) error {
	name = strings.TrimSpace(name)
	if !db.RemoveContent(name) {
		return NotFoundError{Kind: "content", Name: name}
	}
	return nil
}

func normalizeCategoryRefs(db *store.DB, refs []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		if _, ok := db.FindCategory(r); !ok {
			return nil, NotFoundError{Kind: "category", Name: r}
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, nil
}
