package service

import (
	"context"
	"errors"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
)

var ErrInvalidRole = errors.New("invalid_role")

type ProfileService struct {
	Store store.Store
}

// GetProfile returns the profile for an account id.
func (s *ProfileService) GetProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	return s.Store.Profiles().GetProfile(ctx, accountID)
}

// ListProfiles returns all profiles, newest first. Admin only.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.Store.Profiles().ListProfiles(ctx)
}

// UpdateRole changes a profile's role. Admin only.
func (s *ProfileService) UpdateRole(ctx context.Context, accountID, role string) error {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return ErrInvalidRole
	}
	return s.Store.Profiles().UpdateProfileRole(ctx, accountID, role)
}
