package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cms-cli/internal/model"
)

// DB is the whole in-memory dataset. It is an explicit state object: every
// operation takes the DB it works on, so tests and embedders can run any
// number of independent instances. Nothing here touches the filesystem.
type DB struct {
	Categories []model.Category `json:"categories"`
	Contents   []model.Content  `json:"contents"`
}

func New() *DB {
	return &DB{}
}

// FindCategory returns a pointer into db.Categories so callers can mutate in
// place. The pointer is invalidated by appends/removals.
func (db *DB) FindCategory(name string) (*model.Category, bool) {
	name = strings.TrimSpace(name)
	for i := range db.Categories {
		if db.Categories[i].Name == name {
			return &db.Categories[i], true
		}
	}
	return nil, false
}

func (db *DB) FindContent(name string) (*model.Content, bool) {
	name = strings.TrimSpace(name)
	for i := range db.Contents {
		if db.Contents[i].Name == name {
			return &db.Contents[i], true
		}
	}
	return nil, false
}

// ChildrenOf returns the categories whose parent is name, unsorted.
func (db *DB) ChildrenOf(name string) []model.Category {
	var out []model.Category
	for _, c := range db.Categories {
		if c.Parent != nil && *c.Parent == name {
			out = append(out, c)
		}
	}
	return out
}

// MaxSiblingOrder returns the highest SortOrderIndex among the categories
// sharing the given parent ("" for roots), and false when there are none.
func (db *DB) MaxSiblingOrder(parent string) (int, bool) {
	max, found := 0, false
	for _, c := range db.Categories {
		if c.ParentName() != parent {
			continue
		}
		if !found || c.SortOrderIndex > max {
			max = c.SortOrderIndex
		}
		found = true
	}
	return max, found
}

func (db *DB) RemoveCategory(name string) bool {
	for i := range db.Categories {
		if db.Categories[i].Name == name {
			db.Categories = append(db.Categories[:i], db.Categories[i+1:]...)
			return true
		}
	}
	return false
}

func (db *DB) RemoveContent(name string) bool {
	for i := range db.Contents {
		if db.Contents[i].Name == name {
			db.Contents = append(db.Contents[:i], db.Contents[i+1:]...)
			return true
		}
	}
	return false
}

// SortedCategories returns a stable copy ordered by name, for listings that
// should not depend on insertion order.
func (db *DB) SortedCategories() []model.Category {
	out := make([]model.Category, len(db.Categories))
	copy(out, db.Categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (db *DB) SortedContents() []model.Content {
	out := make([]model.Content, len(db.Contents))
	copy(out, db.Contents)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Clear empties both stores.
func (db *DB) Clear() {
	db.Categories = db.Categories[:0]
	db.Contents = db.Contents[:0]
}

// LoadJSON replaces the whole dataset with a previously exported one. Both
// the bare object and the {"data": ...} envelope the export commands emit
// are accepted.
func (db *DB) LoadJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	if inner, ok := raw["data"]; ok {
		data = inner
	}

	var loaded DB
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	db.Categories = loaded.Categories
	db.Contents = loaded.Contents
	return nil
}
