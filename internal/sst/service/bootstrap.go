package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/cryptox"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first admin on an empty database, gated by a
// pre-shared token. Every later account comes in through an invite.
type BootstrapService struct {
	Store store.Store
	Token string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the admin account and its profile in one transaction,
// returning the new account id.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (string, error) {
	l := slogx.FromContext(ctx)

	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return "", ErrBootstrapAlready
	}

	if s.Token == "" || token != s.Token {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	passHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return "", err
	}

	now := time.Now()
	accountID := idx.New().String()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           accountID,
			Email:        req.AdminEmail,
			PasswordHash: passHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}

		return tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID:        accountID,
			Email:     req.AdminEmail,
			Role:      domain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		l.Error("failed to create admin account", slog.Any("error", err))
		return "", err
	}

	l.Info("successfully bootstrapped system", slog.String("account_id", accountID))
	return accountID, nil
}
