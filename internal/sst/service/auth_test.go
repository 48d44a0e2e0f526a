package service

import (
	"context"
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/pkg/cryptox"
	"github.com/sevenstents-cloud/sst-mvp/pkg/idx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	signer, err := jwtx.GenerateSigner("test-key")
	require.NoError(t, err)

	return &AuthService{
		Store:      newTestStore(t),
		Signer:     signer,
		Issuer:     "test-issuer",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

func verifyAccess(t *testing.T, svc *AuthService, token string) *jwtx.Claims {
	t.Helper()

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(svc.Signer))
	claims, err := jwtx.NewVerifier(keys, svc.Issuer).Verify(token)
	require.NoError(t, err)
	return claims
}

func TestSignInWithoutTwoFactor(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	accountID := seedAccount(t, svc.Store, "diego@example.com", "s3cret!pass", "admin")

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := svc.SignIn(ctx, "diego@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := svc.SignIn(ctx, "nobody@example.com", "s3cret!pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("valid credentials issue full pair", func(t *testing.T) {
		result, err := svc.SignIn(ctx, "diego@example.com", "s3cret!pass")
		require.NoError(t, err)
		require.Nil(t, result.Challenge)
		require.NotNil(t, result.Tokens)

		claims := verifyAccess(t, svc, result.Tokens.AccessToken)
		require.Equal(t, accountID, claims.Subject)
		require.Equal(t, []string{jwtx.AMRPassword}, claims.AMR)
		require.Equal(t, "admin", claims.Role)
		require.Contains(t, claims.Scopes, "admin:write")
	})
}

func TestSignInMissingProfileFailsOpen(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	// Account without a profile row.
	cryptox.SetPepperPath(t.TempDir() + "/pepper")
	hash, err := cryptox.HashPassword("s3cret!pass")
	require.NoError(t, err)
	now := time.Now()
	id := idx.New().String()
	require.NoError(t, svc.Store.Accounts().CreateAccount(ctx, domain.Account{
		ID: id, Email: "orphan@example.com", PasswordHash: hash, CreatedAt: now, UpdatedAt: now,
	}))

	result, err := svc.SignIn(ctx, "orphan@example.com", "s3cret!pass")
	require.NoError(t, err)
	require.NotNil(t, result.Tokens)

	claims := verifyAccess(t, svc, result.Tokens.AccessToken)
	require.Equal(t, "user", claims.Role)
	require.NotContains(t, claims.Scopes, "admin:write")
}

func TestSignInWithTwoFactor(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	accountID := seedAccount(t, svc.Store, "elisa@example.com", "s3cret!pass", "user")

	// Enable two-factor through the real flow.
	twoFactor := &TwoFactorService{Store: svc.Store, Issuer: "SST MVP"}
	enrollment, err := twoFactor.Enroll(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, twoFactor.Confirm(ctx, accountID, enrollment.Secret, totpCode(t, enrollment.Secret, time.Now())))

	result, err := svc.SignIn(ctx, "elisa@example.com", "s3cret!pass")
	require.NoError(t, err)
	require.Nil(t, result.Tokens)
	require.NotNil(t, result.Challenge)
	require.True(t, result.Challenge.TwoFactorRequired)
	require.NotEmpty(t, result.Challenge.ChallengeToken)

	t.Run("wrong code rejected, challenge survives", func(t *testing.T) {
		_, err := svc.VerifyTwoFactor(ctx, result.Challenge.ChallengeToken, "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)
	})

	t.Run("unknown challenge rejected", func(t *testing.T) {
		_, err := svc.VerifyTwoFactor(ctx, idx.New().String(), totpCode(t, enrollment.Secret, time.Now()))
		require.ErrorIs(t, err, ErrInvalidChallenge)
	})

	t.Run("correct code issues pair with mfa amr", func(t *testing.T) {
		pair, err := svc.VerifyTwoFactor(ctx, result.Challenge.ChallengeToken, totpCode(t, enrollment.Secret, time.Now()))
		require.NoError(t, err)

		claims := verifyAccess(t, svc, pair.AccessToken)
		require.Equal(t, accountID, claims.Subject)
		require.Equal(t, []string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA}, claims.AMR)
	})

	t.Run("challenge cannot be redeemed twice", func(t *testing.T) {
		_, err := svc.VerifyTwoFactor(ctx, result.Challenge.ChallengeToken, totpCode(t, enrollment.Secret, time.Now()))
		require.ErrorIs(t, err, ErrInvalidChallenge)
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	seedAccount(t, svc.Store, "felipe@example.com", "s3cret!pass", "user")

	result, err := svc.SignIn(ctx, "felipe@example.com", "s3cret!pass")
	require.NoError(t, err)
	first := result.Tokens

	pair, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, pair.RefreshToken)

	// Session ID survives rotation.
	firstClaims := verifyAccess(t, svc, first.AccessToken)
	rotatedClaims := verifyAccess(t, svc, pair.AccessToken)
	require.Equal(t, firstClaims.SID, rotatedClaims.SID)

	t.Run("old refresh token is dead after rotation", func(t *testing.T) {
		_, err := svc.Refresh(ctx, first.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage refresh token rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	seedAccount(t, svc.Store, "gabi@example.com", "s3cret!pass", "user")

	result, err := svc.SignIn(ctx, "gabi@example.com", "s3cret!pass")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, result.Tokens.RefreshToken))

	_, err = svc.Refresh(ctx, result.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// Idempotent: revoking again or revoking garbage is not an error.
	require.NoError(t, svc.SignOut(ctx, result.Tokens.RefreshToken))
	require.NoError(t, svc.SignOut(ctx, "unknown-token"))
}
