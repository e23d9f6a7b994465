package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/phone_price_api/internal/models"
)

func compareSource() *fakeSource {
	return &fakeSource{
		phones: []models.Phone{
			phone(1, models.CategoryFlagship, 2025),
			phone(2, models.CategoryBudget, 2022),
			phone(3, models.CategoryGaming, 2024),
		},
		shops: []models.Shop{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		offers: map[int][]models.Offer{
			1: {offer(1, 1, 1, 900), offer(2, 1, 2, 700), offer(3, 1, 1, 700)},
			2: {offer(4, 2, 2, 150)},
		},
		failFor: map[int]bool{3: true},
	}
}

func TestCompare_AscendingWithBestAtZero(t *testing.T) {
	src := compareSource()
	got, err := NewEngine(src, 0).Compare(context.Background(), NewSelection(2, 1), src.phones, DefaultCriteria(2025))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Phone.ID)
	first := got[1]
	assert.Equal(t, 1, first.Phone.ID)
	require.Len(t, first.Offers, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{first.Offers[0].ID, first.Offers[1].ID, first.Offers[2].ID})
	require.NotNil(t, first.Best)
	assert.Equal(t, first.Offers[0].ID, first.Best.ID)
	assert.Equal(t, "B", first.Best.ShopDetails.Name)
}

func TestCompare_NeedsTwo(t *testing.T) {
	src := compareSource()
	_, err := NewEngine(src, 0).Compare(context.Background(), NewSelection(1), src.phones, DefaultCriteria(2025))
	assert.ErrorIs(t, err, ErrCompareUnavailable)
}

func TestCompare_UnknownPhone(t *testing.T) {
	src := compareSource()
	_, err := NewEngine(src, 0).Compare(context.Background(), NewSelection(1, 42), src.phones, DefaultCriteria(2025))
	assert.ErrorIs(t, err, ErrUnknownPhone)
}

func TestCompare_FailedPhoneHasNoBest(t *testing.T) {
	src := compareSource()
	got, err := NewEngine(src, 0).Compare(context.Background(), NewSelection(1, 3), src.phones, DefaultCriteria(2025))
	require.NoError(t, err)

	assert.True(t, got[1].FetchFailed)
	assert.Nil(t, got[1].Best)
	assert.Empty(t, got[1].Offers)
	assert.False(t, got[1].Summary.MinPrice.IsKnown())
}
