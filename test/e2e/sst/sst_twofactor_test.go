package sst_test

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// generateTOTP computes the current code for a base32 secret.
func generateTOTP(t *testing.T, secret string) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	return code
}

// enrollTwoFactor runs the enroll + confirm handshake and returns the secret.
func enrollTwoFactor(t *testing.T, session *sstsdk.Session) string {
	t.Helper()

	enrollment, err := session.EnrollTwoFactor(t.Context())
	require.NoError(t, err, "Enrollment should succeed")
	require.NotEmpty(t, enrollment.Secret, "Enrollment should return the base32 secret")
	require.NotEmpty(t, enrollment.URI, "Enrollment should return the otpauth URI")
	require.NotEmpty(t, enrollment.QRCode, "Enrollment should return the inline QR image")

	err = session.ConfirmTwoFactor(t.Context(), enrollment.Secret, generateTOTP(t, enrollment.Secret))
	require.NoError(t, err, "Confirmation with a valid code should succeed")

	return enrollment.Secret
}

// TestTwoFactorEnrollmentAndSignIn covers the full enrollment handshake and
// the challenge flow it switches sign-in to.
func TestTwoFactorEnrollmentAndSignIn(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	session := signInAdmin(t, client)

	secret := enrollTwoFactor(t, session)
	t.Logf("Two-factor enrolled")

	// Sign-in now stops at a challenge instead of returning tokens
	newSession, challenge, err := client.AuthenticateWithPassword(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.Nil(t, newSession, "No tokens before the second factor")
	require.NotNil(t, challenge, "Sign-in should return a challenge")
	require.True(t, challenge.TwoFactorRequired)
	require.NotEmpty(t, challenge.ChallengeToken)
	require.Positive(t, challenge.ExpiresIn)

	// A wrong code is rejected and the challenge stays usable
	_, err = client.AuthenticateWithTwoFactor(t.Context(), challenge.ChallengeToken, "000000")
	assertAPIError(t, err, "invalid_code", "Wrong TOTP code should be rejected")

	// The correct code completes the flow
	verified, err := client.AuthenticateWithTwoFactor(t.Context(), challenge.ChallengeToken, generateTOTP(t, secret))
	require.NoError(t, err, "Correct TOTP code should produce tokens")
	require.NotNil(t, verified)

	info, err := verified.GetSession(t.Context())
	require.NoError(t, err)
	require.Contains(t, info.AMR, "pwd")
	require.Contains(t, info.AMR, "otp")
	require.Contains(t, info.AMR, "mfa", "Completed two-factor sign-in should carry the mfa AMR")

	// A consumed challenge token cannot be replayed
	_, err = client.AuthenticateWithTwoFactor(t.Context(), challenge.ChallengeToken, generateTOTP(t, secret))
	assertAPIError(t, err, "invalid_challenge", "Consumed challenge should be rejected")
}

// TestTwoFactorConfirmRequiresValidCode verifies nothing is persisted when
// confirmation fails.
func TestTwoFactorConfirmRequiresValidCode(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	session := signInAdmin(t, client)

	enrollment, err := session.EnrollTwoFactor(t.Context())
	require.NoError(t, err)

	err = session.ConfirmTwoFactor(t.Context(), enrollment.Secret, "000000")
	assertAPIError(t, err, "invalid_code", "Wrong confirmation code should be rejected")

	// Sign-in still works without a second factor: nothing was enabled
	again := signInAdmin(t, client)
	require.NotEmpty(t, again.AccessToken())

	profile, err := again.GetMyProfile(t.Context())
	require.NoError(t, err)
	require.False(t, profile.TwoFactorEnabled, "Failed confirmation must not enable two-factor")
}

// TestTwoFactorDisable verifies disabling returns sign-in to the direct flow.
func TestTwoFactorDisable(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	session := signInAdmin(t, client)

	secret := enrollTwoFactor(t, session)

	// Enrolling twice conflicts
	_, err := session.EnrollTwoFactor(t.Context())
	assertAPIError(t, err, "conflict", "Enrolling while enabled should conflict")

	// Complete a challenge sign-in to get a fresh session, then disable
	_, challenge, err := client.AuthenticateWithPassword(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.NotNil(t, challenge)

	verified, err := client.AuthenticateWithTwoFactor(t.Context(), challenge.ChallengeToken, generateTOTP(t, secret))
	require.NoError(t, err)

	err = verified.DisableTwoFactor(t.Context())
	require.NoError(t, err, "Disable should succeed")

	// Disabling twice conflicts
	err = verified.DisableTwoFactor(t.Context())
	assertAPIError(t, err, "conflict", "Disabling while not enabled should conflict")

	// Sign-in is direct again
	direct := signInAdmin(t, client)
	require.NotEmpty(t, direct.AccessToken())
}
