package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/phone_price_api/internal/models"
)

// ErrBatchFetch wraps failures loading a foundational collection (the phone
// or shop list). Callers should offer a retry rather than render partial data.
var ErrBatchFetch = errors.New("catalog batch fetch failed")

// DefaultConcurrency bounds the per-phone offer fetches issued at once.
const DefaultConcurrency = 8

// Source is the read side of the REST collaborator.
type Source interface {
	ListPhones(ctx context.Context, offset, limit int) ([]models.Phone, error)
	ListShops(ctx context.Context) ([]models.Shop, error)
	// ListOffers returns every offer, or only phoneID's offers when non-nil.
	ListOffers(ctx context.Context, phoneID *int) ([]models.Offer, error)
}

// Page is a skip/limit window passed through to Source.ListPhones.
type Page struct {
	Offset int
	Limit  int
}

// Engine runs the aggregation pipeline against a Source. It holds no
// mutable state; concurrent Run calls are independent.
type Engine struct {
	source      Source
	concurrency int
}

// NewEngine constructs an Engine. concurrency <= 0 uses DefaultConcurrency.
func NewEngine(source Source, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{source: source, concurrency: concurrency}
}

// Run lists a page of phones and returns the filtered, sorted aggregates.
func (e *Engine) Run(ctx context.Context, page Page, c Criteria) ([]PhoneAggregate, error) {
	phones, err := e.source.ListPhones(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list phones: %w", ErrBatchFetch, err)
	}
	return e.Aggregate(ctx, phones, c)
}

// Aggregate applies the pipeline to an already loaded phone list:
// category filter, offer enrichment, price-range filter, sort.
// A failed offer lookup only degrades that phone's aggregate.
func (e *Engine) Aggregate(ctx context.Context, phones []models.Phone, c Criteria) ([]PhoneAggregate, error) {
	phones = FilterCategory(phones, c.Category)

	shops, err := e.Shops(ctx)
	if err != nil {
		return nil, err
	}

	aggs := e.Build(ctx, phones, shops, c)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Arrange(aggs, c), nil
}

// Shops loads the shop map used for enrichment.
func (e *Engine) Shops(ctx context.Context) (map[int]models.Shop, error) {
	shops, err := e.source.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list shops: %w", ErrBatchFetch, err)
	}
	return ShopMap(shops), nil
}

// Build fetches offers for every phone concurrently and returns one
// aggregate per phone in input order, whatever order the fetches finish in.
func (e *Engine) Build(ctx context.Context, phones []models.Phone, shops map[int]models.Shop, c Criteria) []PhoneAggregate {
	out := make([]PhoneAggregate, len(phones))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range phones {
		g.Go(func() error {
			id := phones[i].ID
			offers, err := e.source.ListOffers(ctx, &id)
			out[i] = NewAggregate(phones[i], offers, err, shops, c)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// FilterCategory keeps phones matching category; "all" or "" keeps every
// phone. Unknown category values match nothing.
func FilterCategory(phones []models.Phone, category string) []models.Phone {
	c := Criteria{Category: category}
	out := make([]models.Phone, 0, len(phones))
	for _, p := range phones {
		if c.matchesCategory(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPriceRange keeps aggregates whose minimum price lies in [0, max].
// Aggregates with an unknown minimum are always kept.
func FilterPriceRange(aggs []PhoneAggregate, max int64) []PhoneAggregate {
	out := make([]PhoneAggregate, 0, len(aggs))
	for _, a := range aggs {
		v, ok := a.MinPrice().Amount()
		if !ok || (v >= 0 && v <= max) {
			out = append(out, a)
		}
	}
	return out
}

// Arrange applies the price-range filter and the sort of c.
func Arrange(aggs []PhoneAggregate, c Criteria) []PhoneAggregate {
	return Sort(FilterPriceRange(aggs, c.MaxPrice), c)
}

// Sort returns a stably sorted copy of aggs according to c.Sort.
func Sort(aggs []PhoneAggregate, c Criteria) []PhoneAggregate {
	out := make([]PhoneAggregate, len(aggs))
	copy(out, aggs)

	var less func(a, b PhoneAggregate) bool
	switch c.Sort {
	case SortPriceAsc:
		less = func(a, b PhoneAggregate) bool {
			return comparePrices(a.MinPrice(), b.MinPrice(), true, c.Unknown) < 0
		}
	case SortPriceDesc:
		less = func(a, b PhoneAggregate) bool {
			return comparePrices(a.MinPrice(), b.MinPrice(), false, c.Unknown) < 0
		}
	case SortNewest:
		less = func(a, b PhoneAggregate) bool {
			return releaseYear(a.Phone) > releaseYear(b.Phone)
		}
	default:
		less = func(a, b PhoneAggregate) bool {
			return a.RecommendationScore > b.RecommendationScore
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// RankByScore orders aggregates by descending recommendation score.
func RankByScore(aggs []PhoneAggregate) []PhoneAggregate {
	return Sort(aggs, Criteria{Sort: SortRecommended})
}

// comparePrices orders a before b (negative), after (positive) or as equal
// (zero) for the requested direction.
func comparePrices(a, b Price, ascending bool, placement UnknownPricePlacement) int {
	av, aok := a.Amount()
	bv, bok := b.Amount()

	if !aok || !bok {
		if !aok && !bok {
			return 0
		}
		if ascending || placement == UnknownLast {
			// unknown behaves as +Inf ascending, and always trails with UnknownLast
			if !aok {
				return 1
			}
			return -1
		}
		// legacy descending: unknown behaves as 0
		if !aok {
			av = 0
		}
		if !bok {
			bv = 0
		}
	}

	switch {
	case av == bv:
		return 0
	case (av < bv) == ascending:
		return -1
	default:
		return 1
	}
}

func releaseYear(p models.Phone) int {
	if p.ReleaseYear == nil {
		return 0
	}
	return *p.ReleaseYear
}
