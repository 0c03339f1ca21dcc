package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/house-rentals/internal/domain"
)

type listingRepo struct {
	db *sql.DB
}

const listingColumns = `id, title, description, price, location, bedrooms, bathrooms, area, image_url, owner_id, created_at, updated_at`

func (r *listingRepo) Create(ctx context.Context, l *domain.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.Title, l.Description, l.Price, l.Location, l.Bedrooms, l.Bathrooms,
		l.Area, l.ImageURL, l.OwnerID, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		// The id column is a UUID; anything else cannot match.
		return nil, domain.ErrNotFound
	}
	l := &domain.Listing{}
	err := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id).
		Scan(listingDest(l)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *listingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`)
}

func (r *listingRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *listingRepo) Update(ctx context.Context, l *domain.Listing) error {
	if _, err := uuid.Parse(l.ID); err != nil {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET title = $1, description = $2, price = $3, location = $4, bedrooms = $5,
		 bathrooms = $6, area = $7, image_url = $8, updated_at = $9
		 WHERE id = $10`,
		l.Title, l.Description, l.Price, l.Location, l.Bedrooms, l.Bathrooms, l.Area,
		l.ImageURL, now, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	l.UpdatedAt = now
	return nil
}

func (r *listingRepo) query(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(listingDest(&l)...); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func listingDest(l *domain.Listing) []any {
	return []any{&l.ID, &l.Title, &l.Description, &l.Price, &l.Location, &l.Bedrooms,
		&l.Bathrooms, &l.Area, &l.ImageURL, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt}
}
