package sst_test

import (
	"testing"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the liveness and readiness probes.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Uptime)
	require.NotEmpty(t, health.Version)
	require.Nil(t, health.Checks, "Liveness carries no dependency checks")

	ready, err := client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

// TestJWKSEndpoint verifies the published key set.
func TestJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := sstsdk.NewSDKClient(baseURL)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, jwks.Keys, "Key set should contain the signing key")

	key := jwks.Keys[0]
	require.Equal(t, "OKP", key.Kty)
	require.Equal(t, "Ed25519", key.Crv)
	require.Equal(t, "EdDSA", key.Alg)
	require.Equal(t, "sig", key.Use)
	require.NotEmpty(t, key.Kid)
	require.NotEmpty(t, key.X)
}
