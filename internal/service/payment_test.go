package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/service"
)

type fakeGateway struct {
	orderID   string
	orderErr  error
	verifyErr error

	gotAmount   int64
	gotCurrency string
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, _ string) (string, error) {
	g.gotAmount = amount
	g.gotCurrency = currency
	return g.orderID, g.orderErr
}

func (g *fakeGateway) VerifySignature(_, _, _ string) error { return g.verifyErr }

type failingPayments struct{ domain.PaymentRepository }

func (failingPayments) Create(context.Context, *domain.Payment) error {
	return errors.New("disk full")
}

func newPaymentFixture(t *testing.T, gw *fakeGateway) (*service.PaymentService, *domain.Listing, domain.Store) {
	t.Helper()
	auth, db := newTestAuthService(t)
	owner := registerUser(t, auth, "owner@example.com")
	l, err := service.NewListingService(db.Listings()).Create(context.Background(), owner.ID, validListing("Hilltop", "Pune"))
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}
	svc := service.NewPaymentService(db.Payments(), db.Listings(), gw, service.PaymentConfig{Amount: 100, Currency: "INR"})
	return svc, l, db
}

func TestPaymentService_Checkout(t *testing.T) {
	gw := &fakeGateway{orderID: "order_1"}
	svc, l, _ := newPaymentFixture(t, gw)

	opts, err := svc.Checkout(context.Background(), l.ID, " buyer@example.com ", "+919876543210")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if opts.Key != "rzp_test_key" || opts.Amount != 100 || opts.Currency != "INR" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Name != "Rent Payment" {
		t.Fatalf("expected default name, got %q", opts.Name)
	}
	if opts.Description != "Payment for House ID: "+l.ID {
		t.Fatalf("unexpected description %q", opts.Description)
	}
	if opts.OrderID != "order_1" {
		t.Fatalf("expected order id, got %q", opts.OrderID)
	}
	if opts.Prefill.Email != "buyer@example.com" || opts.Prefill.Contact != "+919876543210" {
		t.Fatalf("unexpected prefill: %+v", opts.Prefill)
	}
	if gw.gotAmount != 100 || gw.gotCurrency != "INR" {
		t.Fatalf("gateway got %d %s", gw.gotAmount, gw.gotCurrency)
	}
}

func TestPaymentService_Checkout_Validation(t *testing.T) {
	svc, l, _ := newPaymentFixture(t, &fakeGateway{})

	tests := []struct {
		name, email, phone, want string
	}{
		{"both missing", "", "", service.MsgContactRequired},
		{"phone missing", "a@b.co", "", service.MsgContactRequired},
		{"bad email", "not-an-email", "+919876543210", service.MsgInvalidEmail},
		{"bad phone", "a@b.co", "012", service.MsgInvalidPhone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Checkout(context.Background(), l.ID, tc.email, tc.phone)
			var ve *service.ValidationError
			if !errors.As(err, &ve) || ve.Message != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestPaymentService_Checkout_UnknownListing(t *testing.T) {
	svc, _, _ := newPaymentFixture(t, &fakeGateway{})

	_, err := svc.Checkout(context.Background(), "00000000-0000-0000-0000-000000000000", "a@b.co", "+919876543210")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPaymentService_Checkout_GatewayError(t *testing.T) {
	svc, l, _ := newPaymentFixture(t, &fakeGateway{orderErr: errors.New("gateway down")})

	if _, err := svc.Checkout(context.Background(), l.ID, "a@b.co", "+919876543210"); err == nil {
		t.Fatal("expected gateway error")
	}
}

func TestPaymentService_Record(t *testing.T) {
	svc, l, _ := newPaymentFixture(t, &fakeGateway{})
	ctx := context.Background()

	p, err := svc.Record(ctx, service.CallbackInput{
		ListingID: l.ID,
		PaymentID: "pay_1",
		OrderID:   "order_1",
		Signature: "sig",
		Email:     "buyer@example.com",
		Phone:     "+919876543210",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.Status != domain.PaymentStatusSuccess || p.Amount != 100 || p.Currency != "INR" {
		t.Fatalf("unexpected payment: %+v", p)
	}

	history, err := svc.History(ctx, l.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].GatewayPaymentID != "pay_1" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestPaymentService_Record_MissingPaymentID(t *testing.T) {
	svc, l, _ := newPaymentFixture(t, &fakeGateway{})

	_, err := svc.Record(context.Background(), service.CallbackInput{ListingID: l.ID})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPaymentService_Record_BadSignature(t *testing.T) {
	svc, l, _ := newPaymentFixture(t, &fakeGateway{verifyErr: errors.New("mismatch")})
	ctx := context.Background()

	_, err := svc.Record(ctx, service.CallbackInput{ListingID: l.ID, PaymentID: "pay_1", OrderID: "order_1", Signature: "bad"})
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	history, _ := svc.History(ctx, l.ID)
	if len(history) != 0 {
		t.Fatalf("expected nothing recorded, got %d rows", len(history))
	}
}

func TestPaymentService_Record_WriteFailure(t *testing.T) {
	_, l, db := newPaymentFixture(t, &fakeGateway{})
	svc := service.NewPaymentService(failingPayments{db.Payments()}, db.Listings(), &fakeGateway{}, service.PaymentConfig{Amount: 100, Currency: "INR"})

	_, err := svc.Record(context.Background(), service.CallbackInput{ListingID: l.ID, PaymentID: "pay_1"})
	if !errors.Is(err, service.ErrPaymentNotRecorded) {
		t.Fatalf("expected ErrPaymentNotRecorded, got %v", err)
	}
}
