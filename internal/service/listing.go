package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/msomdec/house-rentals/internal/domain"
)

// ListingInput is the add/edit listing form after numeric parsing.
type ListingInput struct {
	Title       string
	Description string
	Price       int64
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        int
	ImageURL    string
}

// ValidateListing returns the first failing rule's message, or "".
func ValidateListing(in ListingInput) string {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return "Title is required."
	case strings.TrimSpace(in.Location) == "":
		return "Location is required."
	case in.Price < 0:
		return "Price cannot be negative."
	case in.Bedrooms < 0 || in.Bathrooms < 0:
		return "Room counts cannot be negative."
	case in.Area < 0:
		return "Area cannot be negative."
	case in.ImageURL != "" && !validImageURL(in.ImageURL):
		return "Image URL must be an http(s) link."
	}
	return ""
}

// Uploaded images live under /images/ on this server; anything else must be
// an absolute web URL.
func validImageURL(s string) bool {
	if strings.HasPrefix(s, imagePathPrefix) {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ListingService handles listing browsing, search, and owner edits.
type ListingService struct {
	listings domain.ListingRepository
}

// NewListingService creates a new ListingService.
func NewListingService(listings domain.ListingRepository) *ListingService {
	return &ListingService{listings: listings}
}

// List returns every listing, newest first.
func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// Search fetches all listings and keeps those matching query.
func (s *ListingService) Search(ctx context.Context, query string) ([]domain.Listing, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListings(listings, query), nil
}

// GetByID returns one listing, or domain.ErrNotFound.
func (s *ListingService) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

// ListByOwner returns the listings created by ownerID, newest first.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Listing, error) {
	listings, err := s.listings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner listings: %w", err)
	}
	return listings, nil
}

// Create validates the form and stores a new listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID int64, in ListingInput) (*domain.Listing, error) {
	in = trimListingInput(in)
	if msg := ValidateListing(in); msg != "" {
		return nil, invalid(msg)
	}

	l := &domain.Listing{OwnerID: ownerID}
	applyListingInput(l, in)
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// Update applies the form to an existing listing. Only the owner may edit;
// anyone else gets domain.ErrUnauthorized.
func (s *ListingService) Update(ctx context.Context, userID int64, id string, in ListingInput) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != userID {
		return nil, domain.ErrUnauthorized
	}

	in = trimListingInput(in)
	if msg := ValidateListing(in); msg != "" {
		return nil, invalid(msg)
	}

	applyListingInput(l, in)
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return l, nil
}

func trimListingInput(in ListingInput) ListingInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

func applyListingInput(l *domain.Listing, in ListingInput) {
	l.Title = in.Title
	l.Description = in.Description
	l.Price = in.Price
	l.Location = in.Location
	l.Bedrooms = in.Bedrooms
	l.Bathrooms = in.Bathrooms
	l.Area = in.Area
	l.ImageURL = in.ImageURL
}
