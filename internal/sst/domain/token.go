package domain

import "time"

// TokenPair is what a completed sign-in returns: a short-lived JWT access
// token and an opaque refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds until access token expiry
	Scope        string `json:"scope,omitempty"`
}

// RefreshToken models the stored refresh token record.
type RefreshToken struct {
	ID        string
	AccountID string
	TokenHash string // base64url SHA-256 fingerprint of the opaque token
	SessionID string // stable across rotations
	Scopes    []string
	AMR       []string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
