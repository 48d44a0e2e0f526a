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
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInviteNotFound       = errors.New("invite not found or expired")
	ErrEmailAlreadyTaken    = errors.New("email already taken")
)

type InviteService struct {
	Store store.Store
}

// MintInvite creates a single-use invite and returns the raw token. Only the
// fingerprint is stored.
func (s *InviteService) MintInvite(
	ctx context.Context,
	role string,
	companyID *string,
	expiresAt time.Time,
	createdBy string,
) (string, error) {
	log := slogx.FromContext(ctx)

	if role != domain.RoleAdmin && role != domain.RoleUser {
		return "", ErrInvalidRole
	}
	if expiresAt.Before(time.Now()) {
		log.Warn("attempted to create invite with past expiry",
			slog.Time("expires_at", expiresAt))
		return "", ErrInvalidInviteRequest
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return "", err
	}

	now := time.Now()
	invite := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		Role:      role,
		CompanyID: companyID,
		CreatedBy: createdBy,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID), slog.Any("error", err))
		return "", err
	}

	log.Debug("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("role", role),
		slog.Time("expires_at", expiresAt),
	)

	return token, nil
}

// RedeemInvite exchanges a valid invite token for a new account plus its
// profile, created atomically with marking the invite used.
func (s *InviteService) RedeemInvite(
	ctx context.Context,
	inviteToken string,
	email string,
	password string,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if inviteToken == "" || email == "" || password == "" {
		log.Warn("invite redemption missing required fields")
		return domain.Account{}, ErrInvalidInviteRequest
	}

	fingerprint := cryptox.FingerprintToken(inviteToken)
	invite, err := s.Store.Invites().GetActiveInviteByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite redemption attempted with invalid or expired token")
			return domain.Account{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Account{}, err
	}

	_, err = s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		log.Warn("invite redemption attempted with already-taken email",
			slog.String("invite_id", invite.ID))
		return domain.Account{}, ErrEmailAlreadyTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Account{}, err
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := time.Now()
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			return err
		}

		if err := tx.Profiles().CreateProfile(ctx, domain.Profile{
			ID:        account.ID,
			Email:     email,
			Role:      invite.Role,
			CompanyID: invite.CompanyID,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		return tx.Invites().MarkInviteUsed(ctx, invite.ID, account.ID)
	})
	if err != nil {
		log.Error("failed to redeem invite",
			slog.String("invite_id", invite.ID), slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("account registered via invite",
		slog.String("account_id", account.ID),
		slog.String("invite_id", invite.ID),
		slog.String("role", invite.Role),
	)

	return account, nil
}
