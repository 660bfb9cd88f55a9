package model

import "github.com/google/uuid"

// ListingRef is the compact listing shape embedded in review payloads.
type ListingRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug,omitempty"`
}

// ListingWithStats is one row of GET /listings. Listings without any review
// do not produce a row.
type ListingWithStats struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AvgRating   float64   `json:"avgRating"`
	ReviewCount int       `json:"reviewCount"`
}
