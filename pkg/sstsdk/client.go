package sstsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the SST platform service. It provides access to
// unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes determines whether to perform client-side scope validation
	// before making API requests. When true, the Session will check if it has
	// the required scopes before making a request and return an error if not.
	// Set to false for testing to ensure server-side scope checks work correctly.
	// Default: true
	CheckScopes bool
}

// NewSDKClient creates a new SST service client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// AuthenticateWithPassword signs in with email and password. When the
// account has two-factor authentication disabled it returns an authenticated
// session directly; otherwise it returns the pending challenge and a nil
// session, and the caller completes sign-in with AuthenticateWithTwoFactor.
func (c *SDKClient) AuthenticateWithPassword(
	ctx context.Context,
	email, password string,
) (*Session, *TwoFactorChallengeResponse, error) {
	result, err := c.SignIn(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	if result.Challenge != nil {
		return nil, result.Challenge, nil
	}

	return newSession(c, result.Tokens), nil, nil
}

// AuthenticateWithTwoFactor completes a pending two-factor sign-in with a
// TOTP code.
func (c *SDKClient) AuthenticateWithTwoFactor(
	ctx context.Context,
	challengeToken, code string,
) (*Session, error) {
	tokenResp, err := c.VerifyTwoFactor(ctx, challengeToken, code)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}

// AuthenticateWithRefreshToken creates an authenticated session from an
// existing refresh token.
func (c *SDKClient) AuthenticateWithRefreshToken(
	ctx context.Context,
	refreshToken string,
) (*Session, error) {
	tokenResp, err := c.RefreshGrant(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}

// NewSessionFromTokens creates an authenticated session from existing tokens.
// This is useful when tokens were persisted from a previous authentication.
// The session will still auto-refresh when the access token expires.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken, scope string, expiresIn int64) *Session {
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second)
	expiresAt = expiresAt.Add(-30 * time.Second) // 30 second buffer

	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
		scopes:       parseScopes(scope),
	}
}
