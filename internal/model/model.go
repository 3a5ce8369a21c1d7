package model

import "time"

// Category is a named node in the category forest. Parent is nil for root
// categories; a non-nil Parent holds another category's name. The parent
// graph is kept acyclic by the mutation layer.
type Category struct {
	Name           string  `json:"name"`
	Parent         *string `json:"parent,omitempty"`
	SortOrderIndex int     `json:"sortOrderIndex"`
}

// ParentName returns the parent name, or "" for roots.
func (c Category) ParentName() string {
	if c.Parent == nil {
		return ""
	}
	return *c.Parent
}

// Content is a named article belonging to zero or more categories.
//
// Category references are advisory: deleting a category leaves the content
// record (and its reference list) untouched.
type Content struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Archived   bool     `json:"archived"`
}

// Event is one entry in the in-process audit trail. The trail lives in an
// in-memory database and vanishes with the process.
type Event struct {
	Seq     int64     `json:"seq"`
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	Entity  string    `json:"entity"`
	Payload any       `json:"payload,omitempty"`
}
