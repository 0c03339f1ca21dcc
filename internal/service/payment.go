package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/house-rentals/internal/domain"
)

// ErrPaymentNotRecorded means the gateway took the money but the payment
// row could not be written. Nothing is rolled back at the gateway.
var ErrPaymentNotRecorded = errors.New("payment succeeded but was not recorded")

// Gateway is the hosted checkout provider the browser widget talks to.
type Gateway interface {
	// KeyID is the public key the widget is opened with.
	KeyID() string
	// CreateOrder registers the charge ahead of checkout. It returns ""
	// when the gateway is configured without server-side credentials.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
	// VerifySignature checks the signature sent with the success callback.
	VerifySignature(orderID, paymentID, signature string) error
}

// PaymentConfig fixes what every checkout charges.
type PaymentConfig struct {
	Amount   int64 // minor units
	Currency string
	Name     string
}

// CheckoutOptions is what the checkout widget is opened with.
type CheckoutOptions struct {
	Key         string `json:"key"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderID     string `json:"order_id,omitempty"`
	Prefill     struct {
		Email   string `json:"email"`
		Contact string `json:"contact"`
	} `json:"prefill"`
}

// CallbackInput is what the widget's success handler posts back.
type CallbackInput struct {
	ListingID string
	PaymentID string
	OrderID   string
	Signature string
	Email     string
	Phone     string
}

// PaymentService hands off to the checkout widget and records its result.
type PaymentService struct {
	payments domain.PaymentRepository
	listings domain.ListingRepository
	gateway  Gateway
	cfg      PaymentConfig
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments domain.PaymentRepository, listings domain.ListingRepository, gateway Gateway, cfg PaymentConfig) *PaymentService {
	if cfg.Name == "" {
		cfg.Name = "Rent Payment"
	}
	return &PaymentService{payments: payments, listings: listings, gateway: gateway, cfg: cfg}
}

// Checkout validates the contact details and builds the widget options for
// a rent payment on the given listing.
func (s *PaymentService) Checkout(ctx context.Context, listingID, email, phone string) (*CheckoutOptions, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if msg := ValidateContact(email, phone); msg != "" {
		return nil, invalid(msg)
	}

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	orderID, err := s.gateway.CreateOrder(ctx, s.cfg.Amount, s.cfg.Currency, receiptFor(listingID))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	opts := &CheckoutOptions{
		Key:         s.gateway.KeyID(),
		Amount:      s.cfg.Amount,
		Currency:    s.cfg.Currency,
		Name:        s.cfg.Name,
		Description: "Payment for House ID: " + listingID,
		OrderID:     orderID,
	}
	opts.Prefill.Email = email
	opts.Prefill.Contact = phone
	return opts, nil
}

// Record stores the payment reported by the widget's success callback.
// A failed write returns ErrPaymentNotRecorded; the charge stands.
func (s *PaymentService) Record(ctx context.Context, in CallbackInput) (*domain.Payment, error) {
	if strings.TrimSpace(in.PaymentID) == "" {
		return nil, invalid("Missing payment identifier.")
	}

	if err := s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature); err != nil {
		PaymentsTotal.WithLabelValues(paymentResultBadSignature).Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	p := &domain.Payment{
		ListingID:        in.ListingID,
		Amount:           s.cfg.Amount,
		Currency:         s.cfg.Currency,
		GatewayPaymentID: in.PaymentID,
		GatewayOrderID:   in.OrderID,
		Signature:        in.Signature,
		Status:           domain.PaymentStatusSuccess,
		UserEmail:        strings.TrimSpace(in.Email),
		UserPhone:        strings.TrimSpace(in.Phone),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		PaymentsTotal.WithLabelValues(paymentResultRecordFailed).Inc()
		return nil, fmt.Errorf("%w: %w", ErrPaymentNotRecorded, err)
	}

	PaymentsTotal.WithLabelValues(paymentResultRecorded).Inc()
	return p, nil
}

// History lists recorded payments for a listing, newest first.
func (s *PaymentService) History(ctx context.Context, listingID string) ([]domain.Payment, error) {
	return s.payments.ListByListing(ctx, listingID)
}

// Razorpay caps receipts at 40 characters.
func receiptFor(listingID string) string {
	r := "rent-" + listingID
	if len(r) > 40 {
		r = r[:40]
	}
	return r
}
