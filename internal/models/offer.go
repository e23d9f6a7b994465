package models

import "time"

// DefaultCurrency is applied when an offer is created without a currency code.
const DefaultCurrency = "LKR"

// Offer is one shop's listed price for one phone (a row of shop_prices).
type Offer struct {
	ID        int        `db:"id" json:"id"`
	PhoneID   int        `db:"phone_id" json:"phone_id"`
	ShopID    int        `db:"shop_id" json:"shop_id"`
	Price     int64      `db:"price" json:"price"`
	Currency  string     `db:"currency" json:"currency"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
