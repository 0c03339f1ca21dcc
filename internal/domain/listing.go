package domain

import (
	"context"
	"time"
)

// Listing is a rentable property. Price is the monthly rent in whole rupees
// and Area is in square feet.
type Listing struct {
	ID          string
	Title       string
	Description string
	Price       int64
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        int
	ImageURL    string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	// List returns every listing, newest first.
	List(ctx context.Context) ([]Listing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Listing, error)
	Update(ctx context.Context, listing *Listing) error
}
