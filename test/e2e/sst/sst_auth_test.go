package sst_test

import (
	"testing"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// TestBootstrap covers first-run bootstrap and its guard rails.
func TestBootstrap(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)

	// Wrong token is rejected before anything is created
	_, err := client.Bootstrap(t.Context(), &sstsdk.BootstrapRequest{
		BootstrapToken: "wrong-token",
		AdminEmail:     adminEmail,
		AdminPassword:  adminPassword,
	})
	assertAPIError(t, err, "invalid_request", "Bootstrap with wrong token should fail")

	adminID := bootstrapPlatform(t, client)
	t.Logf("Bootstrapped with admin account %s", adminID)

	// Second bootstrap must conflict, regardless of token
	_, err = client.Bootstrap(t.Context(), &sstsdk.BootstrapRequest{
		BootstrapToken: bootstrapToken,
		AdminEmail:     "other@example.com",
		AdminPassword:  adminPassword,
	})
	assertAPIError(t, err, "conflict", "Second bootstrap should conflict")

	// Admin can sign in with the bootstrap credentials
	session := signInAdmin(t, client)
	require.NotEmpty(t, session.AccessToken())
}

// TestSignInAndSession covers password sign-in and the session echo endpoint.
func TestSignInAndSession(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)

	// Wrong password
	_, _, err := client.AuthenticateWithPassword(t.Context(), adminEmail, "WrongPassword1!")
	assertAPIError(t, err, "invalid_credentials", "Wrong password should be rejected")

	// Unknown account gets the same error as a wrong password
	_, _, err = client.AuthenticateWithPassword(t.Context(), "ghost@example.com", adminPassword)
	assertAPIError(t, err, "invalid_credentials", "Unknown email should be rejected identically")

	session := signInAdmin(t, client)

	info, err := session.GetSession(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminEmail, info.Email)
	require.Equal(t, "admin", info.Role)
	require.NotEmpty(t, info.UserID)
	require.NotEmpty(t, info.SessionID)
	require.Contains(t, info.AMR, "pwd", "Password sign-in should carry the pwd AMR")
	require.NotContains(t, info.AMR, "mfa", "No two-factor step was performed")
	require.Contains(t, info.Scope, "admin:write", "Admin tokens carry admin scopes")
}

// TestRefreshRotation verifies refresh tokens are single-use.
func TestRefreshRotation(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	session := signInAdmin(t, client)

	oldRefresh := session.RefreshToken()

	tokenResp, err := client.RefreshGrant(t.Context(), oldRefresh)
	require.NoError(t, err)
	assertTokenResponse(t, tokenResp)
	require.NotEqual(t, oldRefresh, tokenResp.RefreshToken, "Refresh token should rotate")

	// The consumed token must not work a second time
	_, err = client.RefreshGrant(t.Context(), oldRefresh)
	assertAPIError(t, err, "invalid_token", "Replayed refresh token should be rejected")

	// The rotated token still works
	tokenResp2, err := client.RefreshGrant(t.Context(), tokenResp.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, tokenResp2)
}

// TestSignOut verifies sign-out revokes the refresh token.
func TestSignOut(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	session := signInAdmin(t, client)

	refreshToken := session.RefreshToken()

	err := client.SignOut(t.Context(), refreshToken)
	require.NoError(t, err)

	_, err = client.RefreshGrant(t.Context(), refreshToken)
	assertAPIError(t, err, "invalid_token", "Revoked refresh token should be rejected")

	// Sign-out is idempotent: revoking again is still a 204
	err = client.SignOut(t.Context(), refreshToken)
	require.NoError(t, err, "Repeated sign-out should not error")
}

// TestUnauthenticatedAccess verifies protected endpoints reject missing and
// garbage tokens.
func TestUnauthenticatedAccess(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)

	// A session built from a garbage access token fails on first use
	bogus := client.NewSessionFromTokens("not-a-jwt", "not-a-refresh", "sst:read sst:write", 3600)
	_, err := bogus.GetMyProfile(t.Context())
	require.Error(t, err, "Garbage token should be rejected")
}
