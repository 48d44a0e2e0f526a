package sstsdk

import (
	"time"

	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
)

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents a standard error response from the service.
// This is used internally for parsing HTTP error responses. Client code
// should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is what a completed sign-in, two-factor verification or
// refresh returns: a short-lived JWT access token plus an opaque refresh
// token used to rotate the pair.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque refresh token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int64 `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`
}

// TwoFactorChallengeResponse is returned from the sign-in endpoint instead of
// a token pair when the account has two-factor authentication enabled. The
// challenge token must be sent back together with a TOTP code to complete
// the sign-in.
type TwoFactorChallengeResponse struct {
	// TwoFactorRequired is always true on this response shape
	TwoFactorRequired bool `json:"two_factor_required"`

	// ChallengeToken is the single-use token identifying the pending sign-in
	ChallengeToken string `json:"challenge_token"`

	// ExpiresIn is the lifetime in seconds of the challenge
	ExpiresIn int64 `json:"expires_in"`
}

// SignInResult is the union of the two possible sign-in outcomes. Exactly one
// of Tokens and Challenge is non-nil.
type SignInResult struct {
	Tokens    *TokenResponse
	Challenge *TwoFactorChallengeResponse
}

// SessionResponse echoes the claims of the presented access token. Returned
// from GET /v1/auth/session.
type SessionResponse struct {
	// UserID is the account ID the token was issued to
	UserID string `json:"user_id"`

	// Email is the account email carried on the token
	Email string `json:"email"`

	// Role is the profile role carried on the token ("admin" or "user")
	Role string `json:"role"`

	// SessionID is stable across refresh rotations within one sign-in
	SessionID string `json:"session_id"`

	// Scope is the space-delimited list of granted scopes
	Scope string `json:"scope"`

	// AMR lists the authentication methods used (e.g., ["pwd","otp","mfa"])
	AMR []string `json:"amr"`

	// ExpiresAt is the access token expiry as a Unix timestamp in seconds
	ExpiresAt int64 `json:"expires_at"`
}

// ============================================================================
// Two-Factor Types
// ============================================================================

// TwoFactorEnrollResponse is the provisioning material returned from the
// enroll endpoint. Nothing is persisted server-side until the secret is
// confirmed with a valid code.
type TwoFactorEnrollResponse struct {
	// Secret is the base32-encoded TOTP secret
	Secret string `json:"secret"`

	// URI is the otpauth:// provisioning URI for authenticator apps
	URI string `json:"uri"`

	// QRCode is the provisioning URI rendered as a PNG base64 data URL
	QRCode string `json:"qr_code"`

	// Issuer is the issuer label encoded in the URI
	Issuer string `json:"issuer"`

	// Account is the account label encoded in the URI (the user's email)
	Account string `json:"account"`
}

// TwoFactorConfirmRequest carries the enrollment secret back together with a
// current code to enable two-factor authentication.
type TwoFactorConfirmRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first admin account. It is accepted exactly
// once, gated by the deployment's bootstrap token.
type BootstrapRequest struct {
	// BootstrapToken must match the BOOTSTRAP_TOKEN the service was started with
	BootstrapToken string `json:"bootstrap_token"`

	// AdminEmail is the email for the initial admin account
	AdminEmail string `json:"admin_email"`

	// AdminPassword is the password for the initial admin account (8-128 chars)
	AdminPassword string `json:"admin_password"`
}

// BootstrapResponse contains the ID of the created admin account.
type BootstrapResponse struct {
	AdminAccountID string `json:"admin_account_id"`
}

// ============================================================================
// Invite Types
// ============================================================================

// InviteMintRequest mints a single-use invite token. Admin only.
type InviteMintRequest struct {
	// Role the redeemed account will hold ("admin" or "user")
	Role string `json:"role"`

	// CompanyID optionally scopes the redeemed profile to one company
	CompanyID *string `json:"company_id,omitempty"`

	// ExpiresAt is the invite expiry as a Unix timestamp in seconds
	// (24 hours from creation if omitted)
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// InviteMintResponse carries the plaintext invite token. It is only returned
// once; the service stores a fingerprint.
type InviteMintResponse struct {
	InviteToken string `json:"invite_token"`
	Role        string `json:"role"`
	ExpiresAt   int64  `json:"expires_at"`
}

// InviteRedeemRequest creates an account from an invite token.
type InviteRedeemRequest struct {
	InviteToken string `json:"invite_token"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// AccountResponse describes a created account. The role lives on the
// profile and is echoed by GET /v1/profiles/me after sign-in.
type AccountResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// ============================================================================
// Profile Types
// ============================================================================

// ProfileResponse is the application-level record for an account.
type ProfileResponse struct {
	// ID equals the account ID
	ID string `json:"id"`

	// Email is the account email
	Email string `json:"email"`

	// Role is "admin" or "user"
	Role string `json:"role"`

	// CompanyID optionally scopes the profile to one company
	CompanyID *string `json:"company_id,omitempty"`

	// TwoFactorEnabled reports whether TOTP sign-in is required
	TwoFactorEnabled bool `json:"two_factor_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateRoleRequest changes a profile's role. Admin only.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ============================================================================
// Key Types
// ============================================================================

// JWKSResponse contains the JSON Web Key Set. This is returned from the
// GET /.well-known/jwks.json endpoint and contains the public keys used to
// verify access token signatures.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned from the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
