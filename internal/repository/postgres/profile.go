package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/house-rentals/internal/domain"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT email, full_name, created_at, updated_at FROM profiles WHERE email = $1`, email,
	).Scan(&p.Email, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (email, full_name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		p.Email, p.FullName, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *profileRepo) UpdateFullName(ctx context.Context, email, fullName string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET full_name = $1, updated_at = $2 WHERE email = $3`,
		fullName, time.Now().UTC(), email,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
