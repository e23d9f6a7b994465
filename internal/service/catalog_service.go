package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

// DefaultCatalogSize is how many phones a catalog view loads, matching the
// storefront's single 0..100 page.
const DefaultCatalogSize = 100

// placeholderImage is what the admin form submits when no URL was entered.
const placeholderImage = "string"

// minImageURLLength rejects truncated or junk image values.
const minImageURLLength = 10

// PhoneLookup resolves phones by id for detail and comparison views.
type PhoneLookup interface {
	GetPhone(ctx context.Context, id int) (*models.Phone, error)
	GetPhones(ctx context.Context, ids []int) ([]models.Phone, error)
}

// CatalogOptions are the deployment-wide pipeline policies.
type CatalogOptions struct {
	Concurrency     int
	Offers          catalog.OfferPolicy
	Unknown         catalog.UnknownPricePlacement
	DefaultImageURL string
	PageSize        int
}

// CatalogService exposes the aggregation engine to handlers and the CLI.
type CatalogService struct {
	engine *catalog.Engine
	source catalog.Source
	phones PhoneLookup
	opts   CatalogOptions
	board  catalog.Board
	now    func() time.Time
}

// NewCatalogService constructs a CatalogService over source.
func NewCatalogService(source catalog.Source, phones PhoneLookup, opts CatalogOptions) *CatalogService {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultCatalogSize
	}
	return &CatalogService{
		engine: catalog.NewEngine(source, opts.Concurrency),
		source: source,
		phones: phones,
		opts:   opts,
		now:    time.Now,
	}
}

// SetClock replaces the clock used to derive the current year.
func (s *CatalogService) SetClock(now func() time.Time) {
	s.now = now
}

// BrowseQuery is the catalog filter a client sends. Zero values mean
// "all categories", "no bound", "recommended" and the deployment offer policy.
type BrowseQuery struct {
	Category   string
	MaxPrice   *int64
	Sort       string
	ActiveOnly *bool
}

// PhoneDetails is the single-phone view: ascending offers, the summary and
// the best offer.
type PhoneDetails struct {
	Phone               models.Phone            `json:"phone" yaml:"phone"`
	ImageURL            string                  `json:"image_url" yaml:"image_url"`
	Offers              []catalog.EnrichedOffer `json:"offers" yaml:"offers"`
	Summary             catalog.PriceSummary    `json:"summary" yaml:"summary"`
	BestOffer           *catalog.EnrichedOffer  `json:"best_offer" yaml:"best_offer,omitempty"`
	RecommendationScore int                     `json:"recommendation_score" yaml:"score"`
	FetchFailed         bool                    `json:"fetch_failed,omitempty" yaml:"fetch_failed,omitempty"`
}

// PickResult is a preset together with its ranked phones.
type PickResult struct {
	Preset catalog.Preset           `json:"preset" yaml:"preset"`
	Phones []catalog.PhoneAggregate `json:"phones" yaml:"phones"`
}

// Criteria returns the default criteria for the current year and the
// configured policies.
func (s *CatalogService) Criteria() catalog.Criteria {
	c := catalog.DefaultCriteria(s.now().Year())
	c.Offers = s.opts.Offers
	c.Unknown = s.opts.Unknown
	return c
}

// CriteriaFor validates q and merges it into the default criteria.
func (s *CatalogService) CriteriaFor(q BrowseQuery) (catalog.Criteria, error) {
	c := s.Criteria().WithSort(catalog.ParseSortMode(q.Sort))

	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category != "" && category != catalog.CategoryAll && !models.Category(category).Valid() {
		return c, fmt.Errorf("%w: %q", utils.ErrInvalidCategory, q.Category)
	}
	if category != "" {
		c = c.WithCategory(category)
	}
	if q.MaxPrice != nil {
		if *q.MaxPrice < 0 {
			return c, utils.ErrInvalidPriceRange
		}
		c = c.WithMaxPrice(*q.MaxPrice)
	}
	if q.ActiveOnly != nil {
		c.Offers = catalog.OffersAll
		if *q.ActiveOnly {
			c.Offers = catalog.OffersActiveOnly
		}
	}
	return c, nil
}

// Browse runs the filter and sort pipeline.
func (s *CatalogService) Browse(ctx context.Context, q BrowseQuery) ([]catalog.PhoneAggregate, error) {
	c, err := s.CriteriaFor(q)
	if err != nil {
		return nil, err
	}
	aggs, err := s.engine.Run(ctx, s.page(), c)
	if err != nil {
		return nil, err
	}
	logFetchFailures(aggs)
	return aggs, nil
}

// Pick runs a named preset.
func (s *CatalogService) Pick(ctx context.Context, name string) (*PickResult, error) {
	preset, ok := catalog.LookupPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrUnknownPreset, name)
	}

	phones, err := s.source.ListPhones(ctx, 0, s.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list phones: %w", catalog.ErrBatchFetch, err)
	}
	aggs, err := s.engine.Aggregate(ctx, preset.Filter(phones), preset.Criteria(s.Criteria()))
	if err != nil {
		return nil, err
	}
	logFetchFailures(aggs)
	return &PickResult{Preset: preset, Phones: aggs}, nil
}

// Details builds the detail view for phone id.
func (s *CatalogService) Details(ctx context.Context, id int) (*PhoneDetails, error) {
	phone, err := s.phones.GetPhone(ctx, id)
	if err != nil {
		return nil, err
	}
	if phone == nil {
		return nil, utils.ErrPhoneNotFound
	}
	shops, err := s.engine.Shops(ctx)
	if err != nil {
		return nil, err
	}

	agg := s.engine.Build(ctx, []models.Phone{*phone}, shops, s.Criteria())[0]
	logFetchFailures([]catalog.PhoneAggregate{agg})

	cmp := catalog.NewComparison(agg)
	return &PhoneDetails{
		Phone:               agg.Phone,
		ImageURL:            ResolveImageURL(agg.Phone.ImageURL, s.opts.DefaultImageURL),
		Offers:              cmp.Offers,
		Summary:             cmp.Summary,
		BestOffer:           cmp.Best,
		RecommendationScore: agg.RecommendationScore,
		FetchFailed:         agg.FetchFailed,
	}, nil
}

// Compare replays ids as selection toggles and compares the result.
func (s *CatalogService) Compare(ctx context.Context, ids []int) ([]catalog.Comparison, error) {
	sel := catalog.NewSelection(ids...)
	if !sel.CanCompare() {
		return nil, catalog.ErrCompareUnavailable
	}
	phones, err := s.phones.GetPhones(ctx, sel.IDs())
	if err != nil {
		return nil, fmt.Errorf("%w: load phones: %w", catalog.ErrBatchFetch, err)
	}
	out, err := s.engine.Compare(ctx, sel, phones, s.Criteria())
	if errors.Is(err, catalog.ErrUnknownPhone) {
		return nil, fmt.Errorf("%w: %w", utils.ErrPhoneNotFound, err)
	}
	return out, err
}

// RefreshTrending rebuilds the recommended ranking and publishes it. A
// rebuild that finishes after a newer one started is dropped, and the
// newer snapshot is returned instead.
func (s *CatalogService) RefreshTrending(ctx context.Context) (*catalog.Snapshot, error) {
	gen := s.board.Begin()
	c := s.Criteria()

	aggs, err := s.engine.Run(ctx, s.page(), c)
	if err != nil {
		return nil, err
	}
	logFetchFailures(aggs)

	snap := &catalog.Snapshot{Generation: gen, Criteria: c, Phones: aggs, BuiltAt: s.now()}
	if !s.board.Publish(snap) {
		log.Debug().Uint64("generation", gen).Msg("Dropped superseded trending snapshot")
		if cur := s.board.Current(); cur != nil {
			return cur, nil
		}
	}
	return snap, nil
}

// Trending returns the latest published ranking, building one if none exists.
func (s *CatalogService) Trending(ctx context.Context) (*catalog.Snapshot, error) {
	if cur := s.board.Current(); cur != nil {
		return cur, nil
	}
	return s.RefreshTrending(ctx)
}

func (s *CatalogService) page() catalog.Page {
	return catalog.Page{Offset: 0, Limit: s.opts.PageSize}
}

// ResolveImageURL returns url unless it is missing, the form placeholder or
// too short to be a real URL, in which case it returns def.
func ResolveImageURL(url *string, def string) string {
	if url == nil {
		return def
	}
	u := strings.TrimSpace(*url)
	if u == placeholderImage || len(u) < minImageURLLength {
		return def
	}
	return u
}

func logFetchFailures(aggs []catalog.PhoneAggregate) {
	for _, a := range aggs {
		if a.FetchFailed {
			log.Warn().Err(a.FetchErr).Int("phone_id", a.Phone.ID).Msg("Offer lookup failed, showing phone without prices")
		}
	}
}
