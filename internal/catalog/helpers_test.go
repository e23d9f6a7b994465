package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/GTDGit/phone_price_api/internal/models"
)

var errOfferLookup = errors.New("offer lookup failed")

type fakeSource struct {
	mu       sync.Mutex
	phones   []models.Phone
	shops    []models.Shop
	offers   map[int][]models.Offer
	failFor  map[int]bool
	phoneErr error
	shopErr  error
	calls    []int
}

func (f *fakeSource) ListPhones(_ context.Context, offset, limit int) ([]models.Phone, error) {
	if f.phoneErr != nil {
		return nil, f.phoneErr
	}
	if offset >= len(f.phones) {
		return []models.Phone{}, nil
	}
	end := len(f.phones)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return f.phones[offset:end], nil
}

func (f *fakeSource) ListShops(context.Context) ([]models.Shop, error) {
	if f.shopErr != nil {
		return nil, f.shopErr
	}
	return f.shops, nil
}

func (f *fakeSource) ListOffers(_ context.Context, phoneID *int) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if phoneID == nil {
		var all []models.Offer
		for _, o := range f.offers {
			all = append(all, o...)
		}
		return all, nil
	}
	f.calls = append(f.calls, *phoneID)
	if f.failFor[*phoneID] {
		return nil, errOfferLookup
	}
	return f.offers[*phoneID], nil
}

func intPtr(v int) *int { return &v }

func phone(id int, cat models.Category, year int) models.Phone {
	p := models.Phone{ID: id, Brand: "Brand", Model: "Model", Category: cat}
	if year > 0 {
		p.ReleaseYear = intPtr(year)
	}
	return p
}

func offer(id, phoneID, shopID int, price int64) models.Offer {
	return models.Offer{ID: id, PhoneID: phoneID, ShopID: shopID, Price: price, Currency: models.DefaultCurrency, IsActive: true}
}

func enriched(prices ...int64) []EnrichedOffer {
	out := make([]EnrichedOffer, len(prices))
	for i, p := range prices {
		out[i] = EnrichedOffer{Offer: offer(i+1, 1, i+1, p)}
	}
	return out
}

func aggWithMin(id int, cat models.Category, min Price) PhoneAggregate {
	return PhoneAggregate{
		Phone:   phone(id, cat, 0),
		Summary: PriceSummary{MinPrice: min, MaxPrice: min},
	}
}

func ids(aggs []PhoneAggregate) []int {
	out := make([]int, len(aggs))
	for i, a := range aggs {
		out[i] = a.Phone.ID
	}
	return out
}
