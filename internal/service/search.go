package service

import (
	"strings"

	"github.com/msomdec/house-rentals/internal/domain"
)

// FilterListings returns the listings whose title or location contains query,
// ignoring case. Order is preserved. An empty query matches everything.
func FilterListings(listings []domain.Listing, query string) []domain.Listing {
	if query == "" {
		return listings
	}
	q := strings.ToLower(query)
	matched := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Title), q) || strings.Contains(strings.ToLower(l.Location), q) {
			matched = append(matched, l)
		}
	}
	return matched
}
