package models

import "time"

// Category enumerates the market segments a phone can be listed under.
type Category string

const (
	CategoryBudget   Category = "budget"
	CategoryMidrange Category = "midrange"
	CategoryFlagship Category = "flagship"
	CategoryGaming   Category = "gaming"
	CategoryFoldable Category = "foldable"
)

// Categories returns the valid categories in display order.
func Categories() []Category {
	return []Category{CategoryBudget, CategoryMidrange, CategoryFlagship, CategoryGaming, CategoryFoldable}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBudget, CategoryMidrange, CategoryFlagship, CategoryGaming, CategoryFoldable:
		return true
	}
	return false
}

// Phone represents a handset in the catalog.
// Fields are tagged for both DB scanning and JSON serialization.
type Phone struct {
	ID          int        `db:"id" json:"id"`
	Brand       string     `db:"brand" json:"brand"`
	Model       string     `db:"model" json:"model"`
	Category    Category   `db:"category" json:"category"`
	ImageURL    *string    `db:"image_url" json:"image_url"`
	ReleaseYear *int       `db:"release_year" json:"release_year"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at,omitempty"`
}

// DisplayName joins brand and model the way listings show them.
func (p Phone) DisplayName() string {
	return p.Brand + " " + p.Model
}
