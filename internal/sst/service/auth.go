package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/pkg/cryptox"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
)

const DefaultChallengeTTL = 5 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrInvalidChallenge   = errors.New("invalid_challenge")
)

type AuthService struct {
	Store        store.Store
	Signer       *jwtx.Signer
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	ChallengeTTL time.Duration
}

// SignInResult is a union: exactly one of Tokens or Challenge is set.
// Challenge is returned when the account has two-factor enabled; the client
// must come back through VerifyTwoFactor to get tokens.
type SignInResult struct {
	Tokens    *domain.TokenPair
	Challenge *domain.TwoFactorChallengeResponse
}

// SignIn authenticates an email/password pair. Accounts without two-factor
// get a full token pair immediately (AMR ["pwd"]); enabled accounts get a
// short-lived challenge token instead.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		l.Info("sign-in password mismatch", slog.String("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	// A missing profile row should not exist, but if it does the account
	// signs in as a plain user with no second factor. Flagged for review.
	profile, err := s.Store.Profiles().GetProfile(ctx, account.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		l.Warn("account has no profile row, signing in without two-factor",
			slog.String("account_id", account.ID))
		profile = domain.Profile{ID: account.ID, Email: account.Email, Role: domain.RoleUser}
	}

	scopes := domain.ScopesForRole(profile.Role)
	sessionID := idx.New().String()

	if profile.TwoFactorEnabled && profile.TwoFactorSecret != nil {
		ttl := s.challengeTTL()
		challenge := domain.TwoFactorChallenge{
			ID:        idx.New().String(),
			AccountID: account.ID,
			SessionID: sessionID,
			Scopes:    scopes,
			ExpiresAt: now.Add(ttl),
			CreatedAt: now,
		}
		if err := s.Store.TwoFactorChallenges().CreateChallenge(ctx, challenge); err != nil {
			return nil, fmt.Errorf("create two-factor challenge: %w", err)
		}

		return &SignInResult{Challenge: &domain.TwoFactorChallengeResponse{
			TwoFactorRequired: true,
			ChallengeToken:    challenge.ID,
			ExpiresIn:         int64(ttl.Seconds()),
		}}, nil
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var txErr error
		pair, txErr = s.issueTokens(ctx, tx, account, profile, sessionID, scopes,
			[]string{jwtx.AMRPassword}, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return &SignInResult{Tokens: pair}, nil
}

// VerifyTwoFactor redeems a challenge token plus a TOTP code for a full
// token pair. The challenge is deleted in the same transaction that mints
// the refresh token, so it cannot be redeemed twice.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, challengeToken, code string) (*domain.TokenPair, error) {
	now := time.Now()

	challenge, err := s.Store.TwoFactorChallenges().GetChallenge(ctx, challengeToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidChallenge
		}
		return nil, err
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, challenge.AccountID)
	if err != nil {
		return nil, err
	}

	profile, err := s.Store.Profiles().GetProfile(ctx, challenge.AccountID)
	if err != nil {
		return nil, err
	}
	if !profile.TwoFactorEnabled || profile.TwoFactorSecret == nil {
		return nil, ErrTwoFactorNotEnabled
	}

	if !validateTOTP(code, *profile.TwoFactorSecret, now) {
		return nil, ErrInvalidTOTPCode
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TwoFactorChallenges().DeleteChallenge(ctx, challenge.ID); err != nil {
			return err
		}
		var txErr error
		pair, txErr = s.issueTokens(ctx, tx, account, profile, challenge.SessionID, challenge.Scopes,
			[]string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA}, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued carrying the same session ID, scopes and AMR history.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	now := time.Now()

	hash := cryptox.FingerprintToken(refreshToken)

	var pair *domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		stored, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if stored.Revoked || now.After(stored.ExpiresAt) {
			return ErrInvalidRefresh
		}

		account, err := tx.Accounts().GetAccountByID(ctx, stored.AccountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		profile, err := tx.Profiles().GetProfile(ctx, stored.AccountID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, hash); err != nil {
			return err
		}

		pair, err = s.issueTokens(ctx, tx, account, profile, stored.SessionID, stored.Scopes, stored.AMR, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// SignOut revokes the presented refresh token. Unknown tokens are a no-op so
// sign-out is idempotent.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	hash := cryptox.FingerprintToken(refreshToken)
	return s.Store.RefreshTokens().RevokeRefreshToken(ctx, hash)
}

func (s *AuthService) issueTokens(
	ctx context.Context,
	tx store.Tx,
	account domain.Account,
	profile domain.Profile,
	sessionID string,
	scopes, amr []string,
	now time.Time,
) (*domain.TokenPair, error) {
	claims := jwtx.NewAccessClaims(account.ID, sessionID, scopes, amr,
		s.AccessTTL, s.Issuer, account.Email, profile.Role, now)

	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	refresh := domain.RefreshToken{
		ID:        idx.New().String(),
		AccountID: account.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		SessionID: sessionID,
		Scopes:    scopes,
		AMR:       amr,
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.RefreshTokens().CreateRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
		Scope:        strings.Join(scopes, " "),
	}, nil
}

func (s *AuthService) challengeTTL() time.Duration {
	if s.ChallengeTTL > 0 {
		return s.ChallengeTTL
	}
	return DefaultChallengeTTL
}
