package sstsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Bootstrap creates the first admin account. It succeeds exactly once per
// deployment: once any account exists the endpoint rejects all further calls.
func (c *SDKClient) Bootstrap(ctx context.Context, req *BootstrapRequest) (*BootstrapResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, err
	}

	var bootResp BootstrapResponse
	if err := decodeJSON(resp, &bootResp, http.StatusCreated); err != nil {
		return nil, err
	}

	return &bootResp, nil
}

// RedeemInvite creates an account from an admin-minted invite token. The
// token is single-use. The created account signs in normally afterwards.
func (c *SDKClient) RedeemInvite(ctx context.Context, req *InviteRedeemRequest) (*AccountResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invites/redeem",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}

	return &account, nil
}
