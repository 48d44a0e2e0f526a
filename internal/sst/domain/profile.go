package domain

import "time"

// Roles a profile can hold. Admins additionally get the admin:* scopes on
// their access tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile is the application-level record for an account. ID equals the
// account ID. TwoFactorSecret is only ever set together with
// TwoFactorEnabled and cleared together with it.
type Profile struct {
	ID               string
	Email            string
	Role             string  // admin | user
	CompanyID        *string // optional scoping to one empresa
	TwoFactorEnabled bool
	TwoFactorSecret  *string // base32 TOTP secret, nil unless enabled
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ScopesForRole maps a profile role onto token scopes.
func ScopesForRole(role string) []string {
	if role == RoleAdmin {
		return []string{"sst:read", "sst:write", "admin:read", "admin:write"}
	}
	return []string{"sst:read", "sst:write"}
}
