package catalog

import (
	"github.com/GTDGit/phone_price_api/internal/models"
)

// ShopMap indexes shops by id. When ids repeat, the later shop wins.
func ShopMap(shops []models.Shop) map[int]models.Shop {
	m := make(map[int]models.Shop, len(shops))
	for _, s := range shops {
		m[s.ID] = s
	}
	return m
}

// Enrich joins each offer with its shop. The result has the same length and
// order as offers; a shop id missing from shops leaves ShopDetails nil.
func Enrich(offers []models.Offer, shops map[int]models.Shop) []EnrichedOffer {
	out := make([]EnrichedOffer, len(offers))
	for i, o := range offers {
		out[i] = EnrichedOffer{Offer: o}
		if s, ok := shops[o.ShopID]; ok {
			out[i].ShopDetails = &s
		}
	}
	return out
}
