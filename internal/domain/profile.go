package domain

import (
	"context"
	"time"
)

// Profile is a user's display identity, keyed by email.
type Profile struct {
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfileRepository interface {
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	UpdateFullName(ctx context.Context, email, fullName string) error
}
