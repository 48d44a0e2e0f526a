package sst_test

import (
	"errors"
	"testing"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// TestSignInRateLimit verifies the strict limit on the sign-in endpoint.
// Repeated failures for the same email from the same address must start
// returning 429 before long; this damping is the only brute-force protection
// the credential endpoints have.
func TestSignInRateLimit(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)
	bootstrapPlatform(t, client)

	limited := false
	for i := 0; i < 15; i++ {
		_, _, err := client.AuthenticateWithPassword(t.Context(), adminEmail, "WrongPassword1!")
		require.Error(t, err, "Wrong password should never succeed")

		var apiErr *sstsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.Code == "rate_limit_exceeded" {
			limited = true
			break
		}
		require.Equal(t, "invalid_credentials", apiErr.Code)
	}
	require.True(t, limited, "Strict limit should trip within 15 rapid attempts")

	// A different email is a different bucket and is not throttled
	_, _, err := client.AuthenticateWithPassword(t.Context(), "someone-else@example.com", "Whatever1!")
	assertAPIError(t, err, "invalid_credentials", "Other identities should not be throttled")
}

// TestPublicEndpointsNotThrottled verifies probes stay reachable under the
// default limits.
func TestPublicEndpointsNotThrottled(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)

	for i := 0; i < 20; i++ {
		health, err := client.GetLiveness(t.Context())
		assertHealthy(t, health, err)
	}
}
