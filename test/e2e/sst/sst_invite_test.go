package sst_test

import (
	"testing"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// TestInviteFlow covers minting, redemption and the single-use guarantee.
func TestInviteFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)

	mintResp, err := admin.MintInvite(t.Context(), &sstsdk.InviteMintRequest{Role: "user"})
	require.NoError(t, err)
	require.NotEmpty(t, mintResp.InviteToken)
	require.Equal(t, "user", mintResp.Role)
	require.Positive(t, mintResp.ExpiresAt)

	// Unknown roles are rejected at mint time
	_, err = admin.MintInvite(t.Context(), &sstsdk.InviteMintRequest{Role: "superuser"})
	assertAPIError(t, err, "invalid_request", "Unknown role should be rejected")

	account, err := client.RedeemInvite(t.Context(), &sstsdk.InviteRedeemRequest{
		InviteToken: mintResp.InviteToken,
		Email:       userEmail,
		Password:    userPassword,
	})
	require.NoError(t, err)
	require.Equal(t, userEmail, account.Email)
	require.NotEmpty(t, account.AccountID)

	// The invite is single-use
	_, err = client.RedeemInvite(t.Context(), &sstsdk.InviteRedeemRequest{
		InviteToken: mintResp.InviteToken,
		Email:       "second@example.com",
		Password:    userPassword,
	})
	assertAPIError(t, err, "not_found", "Redeemed invite should not work again")

	// The new account can sign in
	session, challenge, err := client.AuthenticateWithPassword(t.Context(), userEmail, userPassword)
	require.NoError(t, err)
	require.Nil(t, challenge)
	require.NotNil(t, session)
}

// TestInviteEmailConflict verifies redemption fails for a taken email without
// consuming the invite.
func TestInviteEmailConflict(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)

	mintResp, err := admin.MintInvite(t.Context(), &sstsdk.InviteMintRequest{Role: "user"})
	require.NoError(t, err)

	_, err = client.RedeemInvite(t.Context(), &sstsdk.InviteRedeemRequest{
		InviteToken: mintResp.InviteToken,
		Email:       adminEmail,
		Password:    userPassword,
	})
	assertAPIError(t, err, "conflict", "Redeeming with a taken email should conflict")

	// The invite survives the failed redemption
	account, err := client.RedeemInvite(t.Context(), &sstsdk.InviteRedeemRequest{
		InviteToken: mintResp.InviteToken,
		Email:       userEmail,
		Password:    userPassword,
	})
	require.NoError(t, err, "Invite should still be redeemable after a conflict")
	require.Equal(t, userEmail, account.Email)
}

// TestRoleScopesAndPromotion verifies scope enforcement for regular users and
// the admin role-update endpoint.
func TestRoleScopesAndPromotion(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)
	admin := signInAdmin(t, client)

	userID := mintAndRedeemUser(t, client, admin, userEmail, userPassword)

	userSession, _, err := client.AuthenticateWithPassword(t.Context(), userEmail, userPassword)
	require.NoError(t, err)
	require.NotNil(t, userSession)

	require.True(t, userSession.HasScope("sst:read"))
	require.True(t, userSession.HasScope("sst:write"))
	require.False(t, userSession.HasScope("admin:read"), "Regular users must not get admin scopes")

	// Admin-only endpoints are out of reach
	_, err = userSession.ListProfiles(t.Context())
	require.Error(t, err, "Listing profiles requires admin:read")

	// But self-service works
	profile, err := userSession.GetMyProfile(t.Context())
	require.NoError(t, err)
	require.Equal(t, "user", profile.Role)

	// Admin promotes the user
	err = admin.UpdateProfileRole(t.Context(), userID, "admin")
	require.NoError(t, err)

	// Unknown roles are rejected
	err = admin.UpdateProfileRole(t.Context(), userID, "owner")
	assertAPIError(t, err, "invalid_request", "Unknown role should be rejected")

	// Scopes follow the profile role on the next sign-in
	promoted, _, err := client.AuthenticateWithPassword(t.Context(), userEmail, userPassword)
	require.NoError(t, err)
	require.True(t, promoted.HasScope("admin:write"), "Promoted user should get admin scopes")

	profiles, err := promoted.ListProfiles(t.Context())
	require.NoError(t, err)
	require.Len(t, profiles, 2, "Admin and the promoted user should be listed")
}
