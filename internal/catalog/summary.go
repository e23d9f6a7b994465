package catalog

import (
	"sort"
)

// Summarize computes min/max/count over offers. An empty list gives unknown
// min and max and a zero count.
func Summarize(offers []EnrichedOffer) PriceSummary {
	if len(offers) == 0 {
		return PriceSummary{MinPrice: Unknown(), MaxPrice: Unknown()}
	}
	lo, hi := offers[0].Price, offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < lo {
			lo = o.Price
		}
		if o.Price > hi {
			hi = o.Price
		}
	}
	return PriceSummary{MinPrice: Known(lo), MaxPrice: Known(hi), Count: len(offers)}
}

// BestOffer returns the first offer carrying the minimum price.
func BestOffer(offers []EnrichedOffer) (EnrichedOffer, bool) {
	if len(offers) == 0 {
		return EnrichedOffer{}, false
	}
	best := 0
	for i := 1; i < len(offers); i++ {
		if offers[i].Price < offers[best].Price {
			best = i
		}
	}
	return offers[best], true
}

// SortByPrice returns a copy of offers in ascending price order. Equal prices
// keep their input order, so index 0 is always the BestOffer.
func SortByPrice(offers []EnrichedOffer) []EnrichedOffer {
	out := make([]EnrichedOffer, len(offers))
	copy(out, offers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return out
}

// AveragePrice is the truncated mean of the offer prices, or unknown for an
// empty list.
func AveragePrice(offers []EnrichedOffer) Price {
	if len(offers) == 0 {
		return Unknown()
	}
	var sum int64
	for _, o := range offers {
		sum += o.Price
	}
	return Known(sum / int64(len(offers)))
}
