package models

import "time"

// Shop is a retail partner that lists phone prices.
type Shop struct {
	ID            int        `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	City          *string    `db:"city" json:"city"`
	Address       *string    `db:"address" json:"address"`
	ContactNumber *string    `db:"phone" json:"phone"`
	WhatsApp      *string    `db:"whatsapp" json:"whatsapp"` // digits with country code, no "+"
	Website       *string    `db:"website" json:"website"`
	IsVerified    bool       `db:"verified" json:"verified"`
	IsFeatured    bool       `db:"featured" json:"featured"`
	CreatedAt     *time.Time `db:"created_at" json:"created_at,omitempty"`
}
