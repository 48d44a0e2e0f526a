package domain

import "time"

// TwoFactorChallenge is a pending second factor during sign-in. The ID is
// the opaque challenge token handed to the client; the access/refresh pair
// is only minted once a valid code comes back.
type TwoFactorChallenge struct {
	ID        string // ULID, acts as the challenge token
	AccountID string
	SessionID string // session ID the eventual token pair will carry
	Scopes    []string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TwoFactorChallengeResponse is returned from sign-in when the account has
// two-factor enabled.
type TwoFactorChallengeResponse struct {
	TwoFactorRequired bool   `json:"two_factor_required"` // always true
	ChallengeToken    string `json:"challenge_token"`
	ExpiresIn         int64  `json:"expires_in"` // seconds
}

// TwoFactorEnrollment is the provisioning material handed back from an
// enroll call. Nothing is persisted until the code is confirmed.
type TwoFactorEnrollment struct {
	Secret  string `json:"secret"`   // base32 encoded
	URI     string `json:"uri"`      // otpauth:// provisioning URI
	QRCode  string `json:"qr_code"`  // PNG as a base64 data URL
	Issuer  string `json:"issuer"`
	Account string `json:"account"` // label, the user's email
}
