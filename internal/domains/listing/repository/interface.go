package repository

import (
	"context"

	"github.com/google/uuid"

	"reviews-backend/internal/domains/listing/model"
)

type ListingRepository interface {
	// GetByID gets a listing by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// GetBySlug gets a listing by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*model.Listing, error)

	// FindOrCreate resolves the listing for a source listing name, creating
	// it with the given channel tag when the slug is unseen.
	FindOrCreate(ctx context.Context, name, channel string) (*model.Listing, error)

	// ListWithStats returns one row per listing that has at least one
	// review, sorted by average rating descending.
	ListWithStats(ctx context.Context) ([]model.ListingWithStats, error)
}
