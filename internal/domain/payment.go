package domain

import (
	"context"
	"time"
)

const PaymentStatusSuccess = "success"

// Payment records a rent payment reported by the checkout widget.
// Amount is in minor currency units (paise for INR).
type Payment struct {
	ID               string
	ListingID        string
	Amount           int64
	Currency         string
	GatewayPaymentID string
	GatewayOrderID   string
	Signature        string
	Status           string
	UserEmail        string
	UserPhone        string
	CreatedAt        time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByListing(ctx context.Context, listingID string) ([]Payment, error)
}
