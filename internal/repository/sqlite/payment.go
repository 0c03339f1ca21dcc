package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/house-rentals/internal/domain"
)

// paymentRepo implements domain.PaymentRepository using SQLite.
type paymentRepo struct {
	db *sql.DB
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, listing_id, amount, currency, gateway_payment_id, gateway_order_id,
		 signature, status, user_email, user_phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ListingID, p.Amount, p.Currency, p.GatewayPaymentID, p.GatewayOrderID,
		p.Signature, p.Status, p.UserEmail, p.UserPhone, now,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	p.CreatedAt = now
	return nil
}

func (r *paymentRepo) ListByListing(ctx context.Context, listingID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, listing_id, amount, currency, gateway_payment_id, gateway_order_id, signature,
		 status, user_email, user_phone, created_at
		 FROM payments WHERE listing_id = ? ORDER BY created_at DESC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.ListingID, &p.Amount, &p.Currency, &p.GatewayPaymentID,
			&p.GatewayOrderID, &p.Signature, &p.Status, &p.UserEmail, &p.UserPhone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
