package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; the SDK refreshes them
// transparently using the opaque refresh token.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Authentication Method Reference values carried in the "amr" claim.
//
//	"pwd": password authentication
//	"otp": a one-time password was presented (TOTP)
//	"mfa": multi-factor authentication completed
//
// A profile with two-factor enabled only ever receives tokens carrying
// "mfa"; the token service refuses to mint them otherwise.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
	AMRMFA      = "mfa"
)

// Claims are the access-token claims used across the platform.
type Claims struct {
	jwt.RegisteredClaims

	// SID identifies the logical session shared by an access/refresh pair.
	SID string `json:"sid,omitempty"`

	// Scopes gate API surface, e.g. "sst:read sst:write admin:write".
	Scopes []string `json:"scopes,omitempty"`

	// AMR records how the subject authenticated. See the AMR* constants.
	AMR []string `json:"amr,omitempty"`

	// Email mirrors the auth identity's email address.
	Email string `json:"email,omitempty"`

	// Role is the profile role ("admin" or "user").
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	subject, sid string,
	scopes, amr []string,
	ttl time.Duration,
	issuer string,
	email, role string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:    sid,
		Scopes: scopes,
		AMR:    amr,
		Email:  email,
		Role:   role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasAMR reports whether the given method reference is present.
func (c *Claims) HasAMR(method string) bool {
	return slices.Contains(c.AMR, method)
}

// ValidateIssuer checks the issuer against an expected value. Empty expected
// means nothing to enforce.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token is inside its [nbf, exp] window.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
