package catalog

import (
	"github.com/GTDGit/phone_price_api/internal/models"
)

// EnrichedOffer is an offer joined with the shop it references. ShopDetails
// is nil when the shop id is not in the shop map; shop-dependent actions
// (contact buttons, verified badge) are unavailable for such offers.
type EnrichedOffer struct {
	models.Offer
	ShopDetails *models.Shop `json:"shopDetails" yaml:"shop,omitempty"`
}

// PriceSummary is the min/max/count view over one phone's offers.
type PriceSummary struct {
	MinPrice Price `json:"minPrice" yaml:"min_price"`
	MaxPrice Price `json:"maxPrice" yaml:"max_price"`
	Count    int   `json:"count" yaml:"count"`
}

// PhoneAggregate is a phone with its enriched offers, price summary and
// recommendation score. Aggregates are built once per pipeline run and
// never modified afterwards.
type PhoneAggregate struct {
	Phone               models.Phone    `json:"phone" yaml:"phone"`
	Offers              []EnrichedOffer `json:"offers" yaml:"offers"`
	Summary             PriceSummary    `json:"summary" yaml:"summary"`
	OfferCount          int             `json:"offerCount" yaml:"offer_count"`
	RecommendationScore int             `json:"recommendationScore" yaml:"score"`
	FetchFailed         bool            `json:"fetchFailed,omitempty" yaml:"fetch_failed,omitempty"`
	FetchErr            error           `json:"-" yaml:"-"`
}

// MinPrice is shorthand for Summary.MinPrice.
func (a PhoneAggregate) MinPrice() Price {
	return a.Summary.MinPrice
}

// MaxPrice is shorthand for Summary.MaxPrice.
func (a PhoneAggregate) MaxPrice() Price {
	return a.Summary.MaxPrice
}

// SortedOffers returns the offers ordered by ascending price.
func (a PhoneAggregate) SortedOffers() []EnrichedOffer {
	return SortByPrice(a.Offers)
}

// BestOffer returns the cheapest offer, or false when there are none.
func (a PhoneAggregate) BestOffer() (EnrichedOffer, bool) {
	return BestOffer(a.Offers)
}

// NewAggregate builds the aggregate for one phone from its fetched offers.
// A non-nil fetchErr yields an empty offer list and an unknown summary.
// offerCount counts every fetched offer regardless of the offer policy.
func NewAggregate(phone models.Phone, offers []models.Offer, fetchErr error, shops map[int]models.Shop, c Criteria) PhoneAggregate {
	if fetchErr != nil {
		return PhoneAggregate{
			Phone:               phone,
			Offers:              []EnrichedOffer{},
			Summary:             Summarize(nil),
			RecommendationScore: Score(phone, 0, c.CurrentYear),
			FetchFailed:         true,
			FetchErr:            fetchErr,
		}
	}

	enriched := Enrich(c.Offers.Apply(offers), shops)
	return PhoneAggregate{
		Phone:               phone,
		Offers:              enriched,
		Summary:             Summarize(enriched),
		OfferCount:          len(offers),
		RecommendationScore: Score(phone, len(offers), c.CurrentYear),
	}
}
