package service

import (
	"context"
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &BootstrapService{Store: st, Token: "bootstrap-token"}

	data := domain.BootstrapData{AdminEmail: "admin@example.com", AdminPassword: "s3cret!pass"}

	t.Run("wrong token rejected", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "nope", data)
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("creates admin account with profile", func(t *testing.T) {
		accountID, err := svc.Bootstrap(ctx, "bootstrap-token", data)
		require.NoError(t, err)

		profile, err := st.Profiles().GetProfile(ctx, accountID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, profile.Role)
		require.Equal(t, "admin@example.com", profile.Email)
	})

	t.Run("second bootstrap rejected", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "bootstrap-token", data)
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}

func TestInviteLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	adminID := seedAccount(t, st, "admin@example.com", "s3cret!pass", "admin")
	company := seedCompany(t, st)

	svc := &InviteService{Store: st}

	t.Run("past expiry rejected", func(t *testing.T) {
		_, err := svc.MintInvite(ctx, domain.RoleUser, nil, time.Now().Add(-time.Hour), adminID)
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
	})

	t.Run("bogus role rejected", func(t *testing.T) {
		_, err := svc.MintInvite(ctx, "superuser", nil, time.Now().Add(time.Hour), adminID)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	token, err := svc.MintInvite(ctx, domain.RoleUser, &company.ID, time.Now().Add(time.Hour), adminID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("taken email rejected", func(t *testing.T) {
		_, err := svc.RedeemInvite(ctx, token, "admin@example.com", "an0ther!pass")
		require.ErrorIs(t, err, ErrEmailAlreadyTaken)
	})

	t.Run("redeems into account with company-scoped profile", func(t *testing.T) {
		account, err := svc.RedeemInvite(ctx, token, "helena@example.com", "an0ther!pass")
		require.NoError(t, err)

		profile, err := st.Profiles().GetProfile(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, profile.Role)
		require.NotNil(t, profile.CompanyID)
		require.Equal(t, company.ID, *profile.CompanyID)
	})

	t.Run("single use", func(t *testing.T) {
		_, err := svc.RedeemInvite(ctx, token, "ivan@example.com", "an0ther!pass")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		_, err := svc.RedeemInvite(ctx, "bogus-token", "jose@example.com", "an0ther!pass")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})
}
