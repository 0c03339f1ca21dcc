package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/house-rentals/internal/domain"
)

// ProfileService reads and edits display profiles. Profiles are keyed by
// email and created on first access.
type ProfileService struct {
	profiles domain.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles domain.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetOrCreate returns the profile for email, creating it with defaultName
// when none exists yet.
func (s *ProfileService) GetOrCreate(ctx context.Context, email, defaultName string) (*domain.Profile, error) {
	p, err := s.profiles.GetByEmail(ctx, email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	// A concurrent first visit may have created it already; either way re-read.
	if err := s.profiles.Create(ctx, &domain.Profile{Email: email, FullName: defaultName}); err != nil &&
		!errors.Is(err, domain.ErrDuplicateEmail) {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	p, err = s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get profile after create: %w", err)
	}
	return p, nil
}

// UpdateFullName changes the display name, creating the profile first if
// this is the user's first access. The email is read-only.
func (s *ProfileService) UpdateFullName(ctx context.Context, email, fullName string) (*domain.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, invalid(MsgFullNameRequired)
	}

	if _, err := s.GetOrCreate(ctx, email, fullName); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateFullName(ctx, email, fullName); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return s.profiles.GetByEmail(ctx, email)
}
