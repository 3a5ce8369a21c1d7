package store

import "cms-cli/internal/model"

func stringPtr(s string) *string { return &s }

// Seed resets db to the sample parish-site fixture. The fixture is emitted
// in a fixed order so seeding is idempotent: seed, clear, seed yields a
// dataset (and tree rendering) identical to the first seed.
func Seed(db *DB) {
	db.Clear()

	db.Categories = append(db.Categories,
		model.Category{Name: "Home", SortOrderIndex: 0},
		model.Category{Name: "About", SortOrderIndex: 1},
		model.Category{Name: "Mass Times", SortOrderIndex: 2},
		model.Category{Name: "Sacraments", SortOrderIndex: 3},
		model.Category{Name: "Ministries", SortOrderIndex: 4},
		model.Category{Name: "Downloads", SortOrderIndex: 5},
		model.Category{Name: "Staff", Parent: stringPtr("About"), SortOrderIndex: 0},
		model.Category{Name: "History", Parent: stringPtr("About"), SortOrderIndex: 1},
		model.Category{Name: "Contact", Parent: stringPtr("About"), SortOrderIndex: 2},
		model.Category{Name: "Baptism", Parent: stringPtr("Sacraments"), SortOrderIndex: 0},
		model.Category{Name: "Confirmation", Parent: stringPtr("Sacraments"), SortOrderIndex: 1},
		model.Category{Name: "Marriage", Parent: stringPtr("Sacraments"), SortOrderIndex: 2},
		model.Category{Name: "Youth Ministry", Parent: stringPtr("Ministries"), SortOrderIndex: 0},
		model.Category{Name: "Choir", Parent: stringPtr("Ministries"), SortOrderIndex: 1},
		model.Category{Name: "High School", Parent: stringPtr("Youth Ministry"), SortOrderIndex: 0},
	)

	db.Contents = append(db.Contents,
		model.Content{Name: "office_hours", Categories: []string{"Home"}},
		model.Content{Name: "welcome", Categories: []string{"Home"}},
		model.Content{Name: "bulletin", Categories: []string{"Downloads"}},
		model.Content{Name: "youth_banner", Categories: []string{"Youth Ministry"}},
		model.Content{Name: "old_news", Categories: []string{"Home"}, Archived: true},
	)
}
