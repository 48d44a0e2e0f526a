package sst_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/pkg/sstsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for SST platform end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "sst-platform-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminPassword  = "Admin123!"
	userEmail      = "ana@example.com"
	userPassword   = "User123!"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building SST Platform Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up SST Platform Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/sst/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupContainer starts the SST platform in a container and returns the base URL.
// Rate limits are relaxed so rapid test requests do not trip them; rate limit
// behaviour itself is covered by setupContainerWithDefaultRateLimits.
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":   bootstrapToken,
			"SST_DATABASE_FILE": "/home/sst/sst.db",
			"SST_PEPPER_FILE":   "/home/sst/pepper",
			"SST_ISSUER":        "sst-platform",
			"ENV":               "test",
			"LOG_LEVEL":         "info",
			"LOG_FORMAT":        "json",
			// Relaxed limits so tests making many rapid requests do not fail
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupContainerWithDefaultRateLimits starts the service with PRODUCTION rate
// limits. Only used by the rate limit tests.
func setupContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":   bootstrapToken,
			"SST_DATABASE_FILE": "/home/sst/sst.db",
			"SST_PEPPER_FILE":   "/home/sst/pepper",
			"SST_ISSUER":        "sst-platform",
			"ENV":               "test",
			"LOG_LEVEL":         "info",
			"LOG_FORMAT":        "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapPlatform bootstraps the service with the admin account and
// returns the admin account ID.
func bootstrapPlatform(t *testing.T, client *sstsdk.SDKClient) string {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), &sstsdk.BootstrapRequest{
		BootstrapToken: bootstrapToken,
		AdminEmail:     adminEmail,
		AdminPassword:  adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.AdminAccountID, "Admin account ID should not be empty")

	return resp.AdminAccountID
}

// signInAdmin bootstraps (if needed already done by caller) and signs the
// admin in, requiring a direct token response with no two-factor step.
func signInAdmin(t *testing.T, client *sstsdk.SDKClient) *sstsdk.Session {
	t.Helper()

	session, challenge, err := client.AuthenticateWithPassword(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err, "Admin sign-in should succeed")
	require.Nil(t, challenge, "Admin should not have two-factor enabled")
	require.NotNil(t, session)

	return session
}

// mintAndRedeemUser creates a regular user through the invite flow and
// returns the new account ID.
func mintAndRedeemUser(t *testing.T, client *sstsdk.SDKClient, admin *sstsdk.Session, email, password string) string {
	t.Helper()

	mintResp, err := admin.MintInvite(t.Context(), &sstsdk.InviteMintRequest{Role: "user"})
	require.NoError(t, err, "Invite minting should succeed")
	require.NotEmpty(t, mintResp.InviteToken)

	account, err := client.RedeemInvite(t.Context(), &sstsdk.InviteRedeemRequest{
		InviteToken: mintResp.InviteToken,
		Email:       email,
		Password:    password,
	})
	require.NoError(t, err, "Invite redemption should succeed")
	require.Equal(t, email, account.Email)

	return account.AccountID
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, resp *sstsdk.TokenResponse) {
	t.Helper()
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, resp.RefreshToken, "Refresh token should not be empty")
	require.Equal(t, "Bearer", resp.TokenType, "Token type should be Bearer")
	require.NotEmpty(t, resp.Scope, "Scope should not be empty")
}

// assertAPIError verifies an error is an APIError with the expected code.
func assertAPIError(t *testing.T, err error, code string, context string) {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *sstsdk.APIError
	require.ErrorAs(t, err, &apiErr, context)
	require.Equal(t, code, apiErr.Code, context)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *sstsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
