package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/phone_price_api/internal/models"
)

func TestFilters_CategoryThenPriceRange(t *testing.T) {
	aggs := []PhoneAggregate{
		aggWithMin(1, models.CategoryBudget, Known(5000)),
		aggWithMin(2, models.CategoryFlagship, Known(200000)),
		aggWithMin(3, models.CategoryBudget, Unknown()),
	}
	phones := []models.Phone{aggs[0].Phone, aggs[1].Phone, aggs[2].Phone}

	kept := FilterCategory(phones, string(models.CategoryBudget))
	require.Len(t, kept, 2)

	var byCategory []PhoneAggregate
	for _, a := range aggs {
		for _, p := range kept {
			if a.Phone.ID == p.ID {
				byCategory = append(byCategory, a)
			}
		}
	}
	assert.Equal(t, []int{1, 3}, ids(FilterPriceRange(byCategory, 10000)))
}

func TestFilterCategory(t *testing.T) {
	phones := []models.Phone{
		phone(1, models.CategoryBudget, 0),
		phone(2, models.CategoryGaming, 0),
	}

	assert.Len(t, FilterCategory(phones, CategoryAll), 2)
	assert.Len(t, FilterCategory(phones, ""), 2)
	assert.Empty(t, FilterCategory(phones, "tablet"))
	assert.Len(t, FilterCategory(phones, "gaming"), 1)
}

func TestFilterPriceRange_InclusiveBound(t *testing.T) {
	aggs := []PhoneAggregate{
		aggWithMin(1, models.CategoryBudget, Known(10000)),
		aggWithMin(2, models.CategoryBudget, Known(10001)),
		aggWithMin(3, models.CategoryBudget, Known(0)),
	}
	assert.Equal(t, []int{1, 3}, ids(FilterPriceRange(aggs, 10000)))
}

func TestSort_PriceModes(t *testing.T) {
	aggs := []PhoneAggregate{
		aggWithMin(1, models.CategoryBudget, Unknown()),
		aggWithMin(2, models.CategoryBudget, Known(300)),
		aggWithMin(3, models.CategoryBudget, Known(100)),
		aggWithMin(4, models.CategoryBudget, Known(0)),
		aggWithMin(5, models.CategoryBudget, Known(200)),
	}

	tests := []struct {
		name      string
		mode      SortMode
		placement UnknownPricePlacement
		want      []int
	}{
		{name: "ascending legacy", mode: SortPriceAsc, placement: UnknownLegacy, want: []int{4, 3, 5, 2, 1}},
		{name: "ascending unknown last", mode: SortPriceAsc, placement: UnknownLast, want: []int{4, 3, 5, 2, 1}},
		{name: "descending legacy", mode: SortPriceDesc, placement: UnknownLegacy, want: []int{2, 5, 3, 1, 4}},
		{name: "descending unknown last", mode: SortPriceDesc, placement: UnknownLast, want: []int{2, 5, 3, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria(2025).WithSort(tt.mode)
			c.Unknown = tt.placement
			assert.Equal(t, tt.want, ids(Sort(aggs, c)))
		})
	}
}

func TestSort_Newest(t *testing.T) {
	aggs := []PhoneAggregate{
		{Phone: phone(1, models.CategoryBudget, 0)},
		{Phone: phone(2, models.CategoryBudget, 2023)},
		{Phone: phone(3, models.CategoryBudget, 2025)},
		{Phone: phone(4, models.CategoryBudget, 2023)},
	}
	got := Sort(aggs, DefaultCriteria(2025).WithSort(SortNewest))
	assert.Equal(t, []int{3, 2, 4, 1}, ids(got))
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortMode("price-low"))
	assert.Equal(t, SortPriceDesc, ParseSortMode(" PRICE-HIGH "))
	assert.Equal(t, SortNewest, ParseSortMode("newest"))
	assert.Equal(t, SortRecommended, ParseSortMode("cheapest"))
	assert.Equal(t, SortRecommended, ParseSortMode(""))
}

func TestOfferPolicy(t *testing.T) {
	inactive := offer(2, 1, 1, 50)
	inactive.IsActive = false
	offers := []models.Offer{offer(1, 1, 1, 100), inactive}

	assert.Len(t, OffersAll.Apply(offers), 2)
	active := OffersActiveOnly.Apply(offers)
	require.Len(t, active, 1)
	assert.Equal(t, 1, active[0].ID)
}

func TestEngineRun_PartialFailureIsolation(t *testing.T) {
	src := &fakeSource{
		phones: []models.Phone{
			phone(1, models.CategoryBudget, 2024),
			phone(7, models.CategoryMidrange, 2024),
			phone(9, models.CategoryFlagship, 2024),
		},
		shops: []models.Shop{{ID: 1, Name: "Alpha"}},
		offers: map[int][]models.Offer{
			1: {offer(1, 1, 1, 1000)},
			7: {offer(2, 7, 1, 2000)},
			9: {offer(3, 9, 1, 3000)},
		},
		failFor: map[int]bool{7: true},
	}
	engine := NewEngine(src, 2)

	c := DefaultCriteria(2025)
	c.Sort = SortPriceAsc
	got, err := engine.Run(context.Background(), Page{Limit: 100}, c)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 9, 7}, ids(got))

	failed := got[2]
	assert.True(t, failed.FetchFailed)
	assert.ErrorIs(t, failed.FetchErr, errOfferLookup)
	assert.Empty(t, failed.Offers)
	assert.False(t, failed.MinPrice().IsKnown())
	assert.False(t, failed.MaxPrice().IsKnown())
}

type slowSource struct {
	fakeSource
	delays map[int]time.Duration
}

func (s *slowSource) ListOffers(ctx context.Context, phoneID *int) ([]models.Offer, error) {
	if phoneID != nil {
		time.Sleep(s.delays[*phoneID])
	}
	return s.fakeSource.ListOffers(ctx, phoneID)
}

func TestEngineBuild_InputOrderIndependentOfCompletion(t *testing.T) {
	src := &slowSource{
		fakeSource: fakeSource{offers: map[int][]models.Offer{}},
		delays:     map[int]time.Duration{1: 30 * time.Millisecond, 2: 0, 3: 15 * time.Millisecond},
	}
	phones := []models.Phone{
		phone(1, models.CategoryBudget, 0),
		phone(2, models.CategoryBudget, 0),
		phone(3, models.CategoryBudget, 0),
	}

	got := NewEngine(src, 3).Build(context.Background(), phones, nil, DefaultCriteria(2025))
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestEngineRun_BatchFailures(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := NewEngine(&fakeSource{phoneErr: boom}, 0).Run(context.Background(), Page{}, DefaultCriteria(2025))
	assert.ErrorIs(t, err, ErrBatchFetch)
	assert.ErrorIs(t, err, boom)

	src := &fakeSource{phones: []models.Phone{phone(1, models.CategoryBudget, 0)}, shopErr: boom}
	_, err = NewEngine(src, 0).Run(context.Background(), Page{}, DefaultCriteria(2025))
	assert.ErrorIs(t, err, ErrBatchFetch)
}

func TestEngineRun_EmptyIsNotAnError(t *testing.T) {
	got, err := NewEngine(&fakeSource{}, 0).Run(context.Background(), Page{}, DefaultCriteria(2025))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngineRun_SkipsOfferFetchForFilteredPhones(t *testing.T) {
	src := &fakeSource{
		phones: []models.Phone{
			phone(1, models.CategoryBudget, 0),
			phone(2, models.CategoryGaming, 0),
		},
		offers: map[int][]models.Offer{},
	}
	_, err := NewEngine(src, 0).Run(context.Background(), Page{}, DefaultCriteria(2025).WithCategory("gaming"))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, src.calls)
}

func TestEngineRun_ActiveOnlyAffectsPriceNotAvailability(t *testing.T) {
	inactive := offer(2, 1, 1, 50)
	inactive.IsActive = false
	src := &fakeSource{
		phones: []models.Phone{phone(1, models.CategoryBudget, 0)},
		offers: map[int][]models.Offer{1: {offer(1, 1, 1, 100), inactive, offer(3, 1, 1, 120)}},
	}

	c := DefaultCriteria(2025)
	all, err := NewEngine(src, 0).Run(context.Background(), Page{}, c)
	require.NoError(t, err)
	v, _ := all[0].MinPrice().Amount()
	assert.Equal(t, int64(50), v)

	c.Offers = OffersActiveOnly
	active, err := NewEngine(src, 0).Run(context.Background(), Page{}, c)
	require.NoError(t, err)
	v, _ = active[0].MinPrice().Amount()
	assert.Equal(t, int64(100), v)
	assert.Equal(t, 3, active[0].OfferCount)
	assert.Equal(t, all[0].RecommendationScore, active[0].RecommendationScore)
}
