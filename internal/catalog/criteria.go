package catalog

import (
	"math"
	"strings"

	"github.com/GTDGit/phone_price_api/internal/models"
)

// CategoryAll is the wildcard category filter.
const CategoryAll = "all"

// NoPriceBound disables the upper price bound.
const NoPriceBound int64 = math.MaxInt64

// SortMode selects the catalog ordering.
type SortMode string

const (
	SortRecommended SortMode = "recommended"
	SortPriceAsc    SortMode = "price-low"
	SortPriceDesc   SortMode = "price-high"
	SortNewest      SortMode = "newest"
)

// ParseSortMode maps a query value to a SortMode. Unrecognised values fall
// back to SortRecommended.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortRecommended:
		return m
	}
	return SortRecommended
}

// OfferPolicy decides which fetched offers take part in aggregation.
type OfferPolicy int

const (
	// OffersAll treats is_active as a display badge only.
	OffersAll OfferPolicy = iota
	// OffersActiveOnly drops offers with is_active = false.
	OffersActiveOnly
)

// Apply returns the offers admitted by the policy, in input order.
func (p OfferPolicy) Apply(offers []models.Offer) []models.Offer {
	if p != OffersActiveOnly {
		return offers
	}
	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}

// UnknownPricePlacement decides where phones without price data land when
// sorting by price.
type UnknownPricePlacement int

const (
	// UnknownLegacy sorts unknown prices last when ascending and first when
	// descending, as if unknown were +Inf and 0 respectively.
	UnknownLegacy UnknownPricePlacement = iota
	// UnknownLast sorts unknown prices last in both directions.
	UnknownLast
)

// Criteria is the immutable filter/sort state a presentation layer hands to
// the pipeline.
type Criteria struct {
	Category    string
	MaxPrice    int64
	Sort        SortMode
	CurrentYear int
	Offers      OfferPolicy
	Unknown     UnknownPricePlacement
}

// DefaultCriteria is "all categories, no price bound, recommended".
func DefaultCriteria(currentYear int) Criteria {
	return Criteria{
		Category:    CategoryAll,
		MaxPrice:    NoPriceBound,
		Sort:        SortRecommended,
		CurrentYear: currentYear,
	}
}

// WithCategory returns a copy of c filtering on category.
func (c Criteria) WithCategory(category string) Criteria {
	c.Category = category
	return c
}

// WithSort returns a copy of c using mode.
func (c Criteria) WithSort(mode SortMode) Criteria {
	c.Sort = mode
	return c
}

// WithMaxPrice returns a copy of c bounded by max.
func (c Criteria) WithMaxPrice(max int64) Criteria {
	c.MaxPrice = max
	return c
}

func (c Criteria) matchesCategory(p models.Phone) bool {
	if c.Category == "" || c.Category == CategoryAll {
		return true
	}
	return string(p.Category) == c.Category
}
