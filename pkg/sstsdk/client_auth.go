package sstsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SignIn authenticates with email and password. The result carries either a
// token pair (two-factor disabled) or a pending challenge (enabled), never
// both. Most callers should prefer AuthenticateWithPassword which wraps the
// token pair in a Session.
func (c *SDKClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	data := url.Values{
		"email":    {email},
		"password": {password},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/signin",
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, bodyBytes)
	}

	// The endpoint returns one of two shapes; the two_factor_required flag
	// disambiguates them.
	var challenge TwoFactorChallengeResponse
	if err := json.Unmarshal(bodyBytes, &challenge); err == nil && challenge.TwoFactorRequired {
		return &SignInResult{Challenge: &challenge}, nil
	}

	var tokens TokenResponse
	if err := json.Unmarshal(bodyBytes, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("sign-in response carried neither tokens nor a challenge")
	}

	return &SignInResult{Tokens: &tokens}, nil
}

// VerifyTwoFactor completes a pending two-factor sign-in by exchanging the
// challenge token and a current TOTP code for a token pair. Challenges are
// single-use; a failed code leaves the challenge valid for retry.
func (c *SDKClient) VerifyTwoFactor(
	ctx context.Context,
	challengeToken, code string,
) (*TokenResponse, error) {
	data := url.Values{
		"challenge_token": {challengeToken},
		"code":            {code},
	}

	return c.requestTokens(ctx, "/v1/auth/verify", data)
}

// RefreshGrant requests a new token pair using a refresh token. The used
// refresh token is revoked; the response carries its replacement.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"refresh_token": {refreshToken},
	}

	return c.requestTokens(ctx, "/v1/auth/refresh", data)
}

// SignOut revokes a refresh token. Revoking an unknown or already revoked
// token is not an error.
func (c *SDKClient) SignOut(ctx context.Context, refreshToken string) error {
	data := url.Values{
		"refresh_token": {refreshToken},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/signout",
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

func (c *SDKClient) requestTokens(ctx context.Context, path string, data url.Values) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path,
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
