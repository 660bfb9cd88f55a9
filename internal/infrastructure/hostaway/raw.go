package hostaway

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RawCategory is one per-category rating on a raw Hostaway review.
type RawCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// RawReview is the review record shape the Hostaway API returns. Optional
// fields are pointers so absence survives the round trip.
type RawReview struct {
	ID             string        `json:"id"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	Rating         *float64      `json:"rating,omitempty"`
	PublicReview   *string       `json:"publicReview,omitempty"`
	ReviewCategory []RawCategory `json:"reviewCategory,omitempty"`
	SubmittedAt    string        `json:"submittedAt"`
	GuestName      *string       `json:"guestName,omitempty"`
	ListingName    string        `json:"listingName"`
	Channel        *string       `json:"channel,omitempty"`
}

// Validate applies the schema checks at the adapter boundary. A record that
// fails here is rejected before it reaches normalization.
func (r RawReview) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Status, validation.Required),
		validation.Field(&r.SubmittedAt, validation.Required),
		validation.Field(&r.ListingName, validation.Required),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&r.ReviewCategory),
	)
}

func (c RawCategory) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Category, validation.Required),
		validation.Field(&c.Rating, validation.Min(0.0), validation.Max(10.0)),
	)
}
