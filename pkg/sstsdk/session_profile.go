package sstsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetSession echoes the claims of the session's access token as seen by the
// server. Useful for restoring client state from persisted tokens.
func (s *Session) GetSession(ctx context.Context) (*SessionResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/session", nil, nil)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}

	return &session, nil
}

// GetMyProfile retrieves the profile of the authenticated account.
// Requires 'sst:read' scope.
func (s *Session) GetMyProfile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/profiles/me", nil, nil, "sst:read")
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ListProfiles retrieves all profiles. Requires 'admin:read' scope.
func (s *Session) ListProfiles(ctx context.Context) ([]ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/profiles", nil, nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var profiles []ProfileResponse
	if err := decodeJSON(resp, &profiles, http.StatusOK); err != nil {
		return nil, err
	}

	return profiles, nil
}

// UpdateProfileRole changes another profile's role. Requires 'admin:write' scope.
func (s *Session) UpdateProfileRole(ctx context.Context, profileID, role string) error {
	body, err := json.Marshal(&UpdateRoleRequest{Role: role})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch,
		"/v1/profiles/"+profileID+"/role",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
		"admin:write",
	)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
