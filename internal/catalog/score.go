package catalog

import (
	"github.com/GTDGit/phone_price_api/internal/models"
)

var categoryScores = map[models.Category]int{
	models.CategoryFlagship: 10,
	models.CategoryGaming:   9,
	models.CategoryFoldable: 8,
	models.CategoryMidrange: 7,
	models.CategoryBudget:   6,
}

const (
	defaultCategoryScore  = 5
	recentBonus           = 5 // released this year or last year
	fairlyRecentBonus     = 3 // released two years ago
	availabilityBonus     = 3
	availabilityThreshold = 2 // bonus applies above this many offers
)

// Score is the recommendation ranking key: a category base, a recency bonus
// relative to currentYear, and an availability bonus. It is only meaningful
// relative to other scores.
func Score(phone models.Phone, offerCount, currentYear int) int {
	score, ok := categoryScores[phone.Category]
	if !ok {
		score = defaultCategoryScore
	}

	if y := phone.ReleaseYear; y != nil {
		switch {
		case *y >= currentYear-1:
			score += recentBonus
		case *y >= currentYear-2:
			score += fairlyRecentBonus
		}
	}

	if offerCount > availabilityThreshold {
		score += availabilityBonus
	}
	return score
}
