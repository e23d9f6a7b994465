package service

import (
	"context"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

// predictionConfidence is the fixed confidence reported with an average-price
// prediction.
const predictionConfidence = 0.85

// PriceRange summarises a phone's active offers.
type PriceRange struct {
	PhoneID   int           `json:"phone_id"`
	MinPrice  catalog.Price `json:"min_price"`
	MaxPrice  catalog.Price `json:"max_price"`
	AvgPrice  catalog.Price `json:"avg_price"`
	ShopCount int           `json:"shop_count"`
}

// PricePrediction is the average active price offered as an estimate.
type PricePrediction struct {
	PhoneID        int           `json:"phone_id"`
	PredictedPrice catalog.Price `json:"predicted_price"`
	Confidence     *float64      `json:"confidence,omitempty"`
	Message        string        `json:"message,omitempty"`
}

// ActiveComparison lists a phone's active offers, cheapest first.
type ActiveComparison struct {
	Phone  models.Phone            `json:"phone"`
	Prices []catalog.EnrichedOffer `json:"prices"`
}

// PriceRange returns min, max, mean and count over the active offers of
// phone id.
func (s *CatalogService) PriceRange(ctx context.Context, id int) (*PriceRange, error) {
	_, offers, err := s.activeOffers(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	sum := catalog.Summarize(offers)
	return &PriceRange{
		PhoneID:   id,
		MinPrice:  sum.MinPrice,
		MaxPrice:  sum.MaxPrice,
		AvgPrice:  catalog.AveragePrice(offers),
		ShopCount: sum.Count,
	}, nil
}

// Predict estimates the price of phone id as its mean active offer.
func (s *CatalogService) Predict(ctx context.Context, id int) (*PricePrediction, error) {
	_, offers, err := s.activeOffers(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	avg := catalog.AveragePrice(offers)
	if !avg.IsKnown() {
		return &PricePrediction{PhoneID: id, PredictedPrice: avg, Message: "No active prices found"}, nil
	}
	confidence := predictionConfidence
	return &PricePrediction{PhoneID: id, PredictedPrice: avg, Confidence: &confidence}, nil
}

// ActiveComparison returns phone id with its active offers joined to their
// shops and sorted ascending.
func (s *CatalogService) ActiveComparison(ctx context.Context, id int) (*ActiveComparison, error) {
	shops, err := s.engine.Shops(ctx)
	if err != nil {
		return nil, err
	}
	phone, offers, err := s.activeOffers(ctx, id, shops)
	if err != nil {
		return nil, err
	}
	return &ActiveComparison{Phone: *phone, Prices: catalog.SortByPrice(offers)}, nil
}

// activeOffers loads an existing phone and its active offers, joined to
// shops (nil leaves them unjoined). Offer lookup errors are returned, not
// degraded: these views describe one phone.
func (s *CatalogService) activeOffers(ctx context.Context, id int, shops map[int]models.Shop) (*models.Phone, []catalog.EnrichedOffer, error) {
	phone, err := s.phones.GetPhone(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if phone == nil {
		return nil, nil, utils.ErrPhoneNotFound
	}
	offers, err := s.source.ListOffers(ctx, &id)
	if err != nil {
		return nil, nil, err
	}
	return phone, catalog.Enrich(catalog.OffersActiveOnly.Apply(offers), shops), nil
}
