package catalog

import (
	"slices"

	"github.com/GTDGit/phone_price_api/internal/models"
)

// Preset is a named, canned catalog view ("best value", "budget picks").
type Preset struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Categories  []models.Category `json:"categories,omitempty" yaml:"categories,omitempty"` // empty keeps every category
	Sort        SortMode          `json:"sort" yaml:"sort"`
}

var presets = []Preset{
	{
		Name:        "best-overall",
		Title:       "Best Overall",
		Description: "Top-rated phones combining performance, features, and value",
		Sort:        SortRecommended,
	},
	{
		Name:        "best-performance",
		Title:       "Best Performance",
		Description: "Flagship and gaming phones with cutting-edge specs",
		Categories:  []models.Category{models.CategoryFlagship, models.CategoryGaming},
		Sort:        SortNewest,
	},
	{
		Name:        "best-value",
		Title:       "Best Value",
		Description: "Midrange phones offering great features for the price",
		Categories:  []models.Category{models.CategoryMidrange},
		Sort:        SortPriceAsc,
	},
	{
		Name:        "budget",
		Title:       "Budget Picks",
		Description: "Affordable phones that don't compromise on essentials",
		Categories:  []models.Category{models.CategoryBudget},
		Sort:        SortRecommended,
	},
}

// Presets lists the available presets in display order.
func Presets() []Preset {
	return slices.Clone(presets)
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Criteria derives the pipeline criteria for p from base. The category
// filter is applied by Filter, so the result matches every category.
func (p Preset) Criteria(base Criteria) Criteria {
	return base.WithCategory(CategoryAll).WithSort(p.Sort)
}

// Filter keeps phones in the preset's categories, in input order.
func (p Preset) Filter(phones []models.Phone) []models.Phone {
	if len(p.Categories) == 0 {
		return phones
	}
	out := make([]models.Phone, 0, len(phones))
	for _, ph := range phones {
		if slices.Contains(p.Categories, ph.Category) {
			out = append(out, ph)
		}
	}
	return out
}
