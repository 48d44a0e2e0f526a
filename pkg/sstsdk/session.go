package sstsdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when
// needed.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	scopes       map[string]bool // granted scopes for fast lookup

	// onRefresh, when set, is invoked after every successful automatic
	// refresh. SessionStore uses it to surface token_refreshed events.
	onRefresh func(*TokenResponse)
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	// Subtract 30 seconds buffer to refresh before actual expiry
	expiresAt = expiresAt.Add(-30 * time.Second)

	return &Session{
		client:       client,
		accessToken:  tokenResp.AccessToken,
		refreshToken: tokenResp.RefreshToken,
		expiresAt:    expiresAt,
		scopes:       parseScopes(tokenResp.Scope),
	}
}

// parseScopes parses a space-delimited scope string into a map for fast lookup.
func parseScopes(scopeStr string) map[string]bool {
	if scopeStr == "" {
		return make(map[string]bool)
	}

	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

// Revoke revokes the current refresh token, invalidating this session.
func (s *Session) Revoke(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken == "" {
		return fmt.Errorf("no refresh token to revoke")
	}

	return s.client.SignOut(ctx, refreshToken)
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	// Token expired, need to refresh
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	tokenResp, err := s.client.RefreshGrant(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	s.refreshToken = tokenResp.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - 30*time.Second)
	s.scopes = parseScopes(tokenResp.Scope)

	if s.onRefresh != nil {
		s.onRefresh(tokenResp)
	}

	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh
// automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Scopes returns a copy of the current granted scopes as a slice.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	return scopes
}

// HasScope returns true if the session has the specified scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// checkScopes validates that the session has all required scopes. Returns nil
// when the client has scope checking disabled.
func (s *Session) checkScopes(requiredScopes ...string) error {
	if !s.client.CheckScopes || len(requiredScopes) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, scope := range requiredScopes {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("session is missing required scopes: %s", strings.Join(missing, " "))
	}
	return nil
}
