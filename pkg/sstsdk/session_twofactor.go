package sstsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// EnrollTwoFactor generates a new TOTP secret and provisioning material for
// the authenticated account. Nothing is persisted server-side until the
// secret is confirmed; calling enroll again simply generates a fresh secret.
func (s *Session) EnrollTwoFactor(ctx context.Context) (*TwoFactorEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/enroll", nil, nil, "sst:write")
	if err != nil {
		return nil, err
	}

	var enroll TwoFactorEnrollResponse
	if err := decodeJSON(resp, &enroll, http.StatusOK); err != nil {
		return nil, err
	}

	return &enroll, nil
}

// ConfirmTwoFactor enables two-factor authentication by proving possession of
// the enrollment secret with a current TOTP code. An incorrect code leaves
// the account unchanged and the secret valid for retry.
func (s *Session) ConfirmTwoFactor(ctx context.Context, secret, code string) error {
	body, err := json.Marshal(&TwoFactorConfirmRequest{Secret: secret, Code: code})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/confirm",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
		"sst:write",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// DisableTwoFactor turns off two-factor authentication for the authenticated
// account and discards the stored secret.
func (s *Session) DisableTwoFactor(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/2fa/disable", nil, nil, "sst:write")
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// MintInvite creates a single-use invite token for a new account.
// Requires 'admin:write' scope.
func (s *Session) MintInvite(ctx context.Context, req *InviteMintRequest) (*InviteMintResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites/mint",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
		"admin:write",
	)
	if err != nil {
		return nil, err
	}

	var invite InviteMintResponse
	if err := decodeJSON(resp, &invite, http.StatusCreated); err != nil {
		return nil, err
	}

	return &invite, nil
}
