package models

import "time"

// Review is a visitor's rating of a phone.
type Review struct {
	ID        int        `db:"id" json:"id"`
	PhoneID   int        `db:"phone_id" json:"phone_id"`
	UserName  string     `db:"user_name" json:"user_name"`
	Rating    int        `db:"rating" json:"rating"`
	Comment   string     `db:"comment" json:"comment"`
	Helpful   int        `db:"helpful" json:"helpful"`
	CreatedAt *time.Time `db:"created_at" json:"created_at,omitempty"`
}

// ReviewWithPhone adds the reviewed phone's display name for listings.
type ReviewWithPhone struct {
	Review
	PhoneName string `db:"phone_name" json:"phone_name"`
}
