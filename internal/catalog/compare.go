package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/GTDGit/phone_price_api/internal/models"
)

// ErrCompareUnavailable is returned when fewer than MinComparable phones are selected.
var ErrCompareUnavailable = errors.New("comparison needs at least two selected phones")

// ErrUnknownPhone is returned when a selected id has no phone record.
var ErrUnknownPhone = errors.New("selected phone not found")

// Comparison is one column of a comparison view.
type Comparison struct {
	Phone       models.Phone    `json:"phone" yaml:"phone"`
	Offers      []EnrichedOffer `json:"offers" yaml:"offers"` // ascending by price
	Summary     PriceSummary    `json:"summary" yaml:"summary"`
	Best        *EnrichedOffer  `json:"bestOffer" yaml:"best_offer,omitempty"`
	FetchFailed bool            `json:"fetchFailed,omitempty" yaml:"fetch_failed,omitempty"`
}

// NewComparison derives a comparison column from an aggregate.
func NewComparison(a PhoneAggregate) Comparison {
	sorted := a.SortedOffers()
	cmp := Comparison{
		Phone:       a.Phone,
		Offers:      sorted,
		Summary:     a.Summary,
		FetchFailed: a.FetchFailed,
	}
	if len(sorted) > 0 {
		best := sorted[0]
		cmp.Best = &best
	}
	return cmp
}

// Compare builds comparison columns for the selected phones, in selection
// order. phones must contain a record for every selected id.
func (e *Engine) Compare(ctx context.Context, sel Selection, phones []models.Phone, c Criteria) ([]Comparison, error) {
	if !sel.CanCompare() {
		return nil, ErrCompareUnavailable
	}

	byID := make(map[int]models.Phone, len(phones))
	for _, p := range phones {
		byID[p.ID] = p
	}
	picked := make([]models.Phone, 0, sel.Len())
	for _, id := range sel.IDs() {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPhone, id)
		}
		picked = append(picked, p)
	}

	shops, err := e.Shops(ctx)
	if err != nil {
		return nil, err
	}

	aggs := e.Build(ctx, picked, shops, c)
	out := make([]Comparison, len(aggs))
	for i, a := range aggs {
		out[i] = NewComparison(a)
	}
	return out, nil
}
