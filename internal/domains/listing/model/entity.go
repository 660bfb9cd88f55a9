package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing represents a property that reviews belong to. Listings are created
// lazily the first time a review references an unseen listing name and are
// never deleted outside a full reseed.
type Listing struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Channel *string   `json:"channel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
