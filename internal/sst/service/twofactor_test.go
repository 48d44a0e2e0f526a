package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func totpCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestTwoFactorEnroll(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accountID := seedAccount(t, st, "ana@example.com", "s3cret!pass", "user")

	svc := &TwoFactorService{Store: st, Issuer: "SST MVP"}

	enrollment, err := svc.Enroll(ctx, accountID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.True(t, strings.HasPrefix(enrollment.URI, "otpauth://totp/SST%20MVP:ana@example.com?"))
	require.Contains(t, enrollment.URI, "secret="+enrollment.Secret)
	require.Contains(t, enrollment.URI, "algorithm=SHA1")
	require.Contains(t, enrollment.URI, "digits=6")
	require.Contains(t, enrollment.URI, "period=30")
	require.True(t, strings.HasPrefix(enrollment.QRCode, "data:image/png;base64,"))

	// Enrollment alone persists nothing.
	profile, err := st.Profiles().GetProfile(ctx, accountID)
	require.NoError(t, err)
	require.False(t, profile.TwoFactorEnabled)
	require.Nil(t, profile.TwoFactorSecret)
}

func TestTwoFactorConfirm(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accountID := seedAccount(t, st, "bruno@example.com", "s3cret!pass", "user")

	svc := &TwoFactorService{Store: st, Issuer: "SST MVP"}

	enrollment, err := svc.Enroll(ctx, accountID)
	require.NoError(t, err)

	t.Run("wrong code leaves profile untouched", func(t *testing.T) {
		err := svc.Confirm(ctx, accountID, enrollment.Secret, "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		profile, err := st.Profiles().GetProfile(ctx, accountID)
		require.NoError(t, err)
		require.False(t, profile.TwoFactorEnabled)
		require.Nil(t, profile.TwoFactorSecret)
	})

	t.Run("correct code persists enabled and secret together", func(t *testing.T) {
		code := totpCode(t, enrollment.Secret, time.Now())
		require.NoError(t, svc.Confirm(ctx, accountID, enrollment.Secret, code))

		profile, err := st.Profiles().GetProfile(ctx, accountID)
		require.NoError(t, err)
		require.True(t, profile.TwoFactorEnabled)
		require.NotNil(t, profile.TwoFactorSecret)
		require.Equal(t, enrollment.Secret, *profile.TwoFactorSecret)
	})

	t.Run("second enrollment rejected once enabled", func(t *testing.T) {
		_, err := svc.Enroll(ctx, accountID)
		require.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)
	})
}

func TestTwoFactorDisable(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accountID := seedAccount(t, st, "carla@example.com", "s3cret!pass", "user")

	svc := &TwoFactorService{Store: st, Issuer: "SST MVP"}

	t.Run("disable before enable rejected", func(t *testing.T) {
		require.ErrorIs(t, svc.Disable(ctx, accountID), ErrTwoFactorNotEnabled)
	})

	enrollment, err := svc.Enroll(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, accountID, enrollment.Secret, totpCode(t, enrollment.Secret, time.Now())))

	t.Run("disable clears both fields", func(t *testing.T) {
		require.NoError(t, svc.Disable(ctx, accountID))

		profile, err := st.Profiles().GetProfile(ctx, accountID)
		require.NoError(t, err)
		require.False(t, profile.TwoFactorEnabled)
		require.Nil(t, profile.TwoFactorSecret)
	})
}

func TestValidateTOTPWindow(t *testing.T) {
	t.Parallel()

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "SST MVP",
		AccountName: "window@example.com",
		SecretSize:  totpSecretSize,
	})
	require.NoError(t, err)
	secret := key.Secret()

	now := time.Date(2025, 6, 1, 12, 0, 15, 0, time.UTC)

	t.Run("current window accepted", func(t *testing.T) {
		require.True(t, validateTOTP(totpCode(t, secret, now), secret, now))
	})

	t.Run("previous window accepted", func(t *testing.T) {
		require.True(t, validateTOTP(totpCode(t, secret, now.Add(-30*time.Second)), secret, now))
	})

	t.Run("next window accepted", func(t *testing.T) {
		require.True(t, validateTOTP(totpCode(t, secret, now.Add(30*time.Second)), secret, now))
	})

	t.Run("two windows out rejected", func(t *testing.T) {
		require.False(t, validateTOTP(totpCode(t, secret, now.Add(-90*time.Second)), secret, now))
		require.False(t, validateTOTP(totpCode(t, secret, now.Add(90*time.Second)), secret, now))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other, err := totp.Generate(totp.GenerateOpts{
			Issuer:      "SST MVP",
			AccountName: "other@example.com",
			SecretSize:  totpSecretSize,
		})
		require.NoError(t, err)
		require.False(t, validateTOTP(totpCode(t, other.Secret(), now), secret, now))
	})
}
