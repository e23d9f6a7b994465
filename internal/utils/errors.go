package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrPhoneNotFound      = errors.New("PHONE_NOT_FOUND")
	ErrShopNotFound       = errors.New("SHOP_NOT_FOUND")
	ErrShopNameRequired   = errors.New("SHOP_NAME_REQUIRED")
	ErrPriceNotFound      = errors.New("PRICE_NOT_FOUND")
	ErrReviewNotFound     = errors.New("REVIEW_NOT_FOUND")
	ErrInvalidCategory    = errors.New("INVALID_CATEGORY")
	ErrInvalidCurrency    = errors.New("INVALID_CURRENCY")
	ErrInvalidPrice       = errors.New("INVALID_PRICE")
	ErrInvalidPriceRange  = errors.New("INVALID_PRICE_RANGE")
	ErrInvalidRating      = errors.New("INVALID_RATING")
	ErrNotReviewAuthor    = errors.New("NOT_REVIEW_AUTHOR")
	ErrUnknownPreset      = errors.New("UNKNOWN_PRESET")
)
