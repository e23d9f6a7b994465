package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/phone_price_api/internal/models"
)

func TestSummarize_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		prices []int64
		min    int64
		max    int64
	}{
		{name: "single", prices: []int64{500}, min: 500, max: 500},
		{name: "unordered", prices: []int64{300, 100, 200}, min: 100, max: 300},
		{name: "zero price", prices: []int64{0, 750}, min: 0, max: 750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := enriched(tt.prices...)
			s := Summarize(offers)

			lo, ok := s.MinPrice.Amount()
			require.True(t, ok)
			hi, ok := s.MaxPrice.Amount()
			require.True(t, ok)
			assert.Equal(t, tt.min, lo)
			assert.Equal(t, tt.max, hi)
			assert.Equal(t, len(tt.prices), s.Count)
			for _, o := range offers {
				assert.LessOrEqual(t, lo, o.Price)
				assert.GreaterOrEqual(t, hi, o.Price)
			}
		})
	}
}

func TestSummarize_EmptyIsUnknown(t *testing.T) {
	s := Summarize(nil)
	assert.False(t, s.MinPrice.IsKnown())
	assert.False(t, s.MaxPrice.IsKnown())
	assert.Zero(t, s.Count)
}

func TestBestOffer_FirstOccurrenceWins(t *testing.T) {
	shops := ShopMap([]models.Shop{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	offers := Enrich([]models.Offer{offer(1, 1, 1, 100), offer(2, 1, 2, 100)}, shops)

	for i := 0; i < 5; i++ {
		best, ok := BestOffer(offers)
		require.True(t, ok)
		assert.Equal(t, "A", best.ShopDetails.Name)
	}

	sorted := SortByPrice(offers)
	assert.Equal(t, "A", sorted[0].ShopDetails.Name)
}

func TestBestOffer_Empty(t *testing.T) {
	_, ok := BestOffer(nil)
	assert.False(t, ok)
}

func TestSortByPrice_StableAndCopy(t *testing.T) {
	offers := enriched(300, 100, 200, 100)
	sorted := SortByPrice(offers)

	assert.Equal(t, []int{2, 4, 3, 1}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID})
	assert.Equal(t, 1, offers[0].ID, "input must not be reordered")
}

func TestAveragePrice(t *testing.T) {
	v, ok := AveragePrice(enriched(100, 200, 250)).Amount()
	require.True(t, ok)
	assert.Equal(t, int64(183), v)

	assert.False(t, AveragePrice(nil).IsKnown())
}
