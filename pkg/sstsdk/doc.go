/*
Package sstsdk provides a client SDK for interacting with the SST platform service.

# Overview

The sstsdk package implements a client for the SST (occupational safety and
health) platform service. It provides unauthenticated operations (via
SDKClient), authenticated operations with automatic token refresh (via
Session), and a reactive session mirror for interactive frontends (via
SessionStore).

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations and creates authenticated sessions
  - Session: Provides authenticated operations with automatic token refresh

Create an SDKClient to interact with public endpoints and initiate
authentication flows:

	client := sstsdk.NewSDKClient("https://sst.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Bootstrap the service (one-time setup)
	boot, err := client.Bootstrap(ctx, req)

	// Authenticate to create a session
	session, challenge, err := client.AuthenticateWithPassword(ctx, email, password)
	if challenge != nil {
		// Two-factor enabled: complete with a TOTP code
		session, err = client.AuthenticateWithTwoFactor(ctx, challenge.ChallengeToken, code)
	}

Use a Session for authenticated operations. Sessions automatically handle
token expiration and refresh:

	// Get the caller's profile (requires sst:read scope)
	profile, err := session.GetMyProfile(ctx)

	// Enroll in two-factor authentication (requires sst:write scope)
	enroll, err := session.EnrollTwoFactor(ctx)
	err = session.ConfirmTwoFactor(ctx, enroll.Secret, code)

	// Mint an invite (requires admin:write scope)
	invite, err := session.MintInvite(ctx, req)

# SessionStore and the Route Guard

SessionStore mirrors the authenticated session for interactive frontends. It
broadcasts lifecycle events (initial_session, signed_in, two_factor_pending,
token_refreshed, signed_out) to subscribers and loads the profile
asynchronously after sign-in:

	store := sstsdk.NewSessionStore(client)
	events, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.ResolveInitial(restoredSession) // nil when nothing was persisted

	result, err := store.SignIn(ctx, email, password)
	if result.Challenge != nil {
		err = store.VerifyTwoFactor(ctx, code)
	}

EvaluateGate is the pure routing decision over a store snapshot. It decides
whether the current page holds or redirects, and never redirects while the
initial session state is still unresolved:

	switch sstsdk.EvaluateGate(store.GateInput(onLoginPage)) {
	case sstsdk.GateRedirectLogin:
		// send the user to /login
	case sstsdk.GateRedirectHome:
		// send the user to /
	}

# Error Handling

API errors are returned as *APIError with the HTTP status, a machine-readable
code and a description:

	var apiErr *sstsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == sstsdk.ErrorCodeInvalidCode {
		// wrong TOTP code, the challenge is still valid for retry
	}
*/
package sstsdk
