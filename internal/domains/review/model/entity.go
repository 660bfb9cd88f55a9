package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a guest review normalized from an external source. The
// (Source, ExternalID) pair is unique: re-ingesting the same external record
// updates the row in place.
type Review struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	ExternalID string    `json:"externalId"`
	ListingID  uuid.UUID `json:"listingId"`

	Type          string             `json:"type"`   // guest-to-host | host-to-guest
	Status        string             `json:"status"` // published | draft | hidden
	RatingOverall *float64           `json:"ratingOverall"`
	Categories    map[string]float64 `json:"categories,omitempty"`
	Text          *string            `json:"text,omitempty"`
	AuthorName    *string            `json:"authorName,omitempty"`
	Channel       *string            `json:"channel,omitempty"`
	SubmittedAt   time.Time          `json:"submittedAt"`

	// Approved is the only field the approval workflow mutates. Ingest never
	// touches it on update.
	Approved bool `json:"approved"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewWithListing is a review joined with its owning listing's display
// fields, as read queries return it.
type ReviewWithListing struct {
	Review
	ListingName string `json:"-"`
	ListingSlug string `json:"-"`
}

// ReviewSelectionLog is one append-only audit entry per approval state
// change. Two identical approve calls produce two entries.
type ReviewSelectionLog struct {
	ID       uuid.UUID `json:"id"`
	ReviewID uuid.UUID `json:"reviewId"`
	Action   string    `json:"action"` // approved | unapproved
	Actor    *string   `json:"actor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
