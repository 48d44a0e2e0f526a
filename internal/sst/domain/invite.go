package domain

import "time"

// Invite lets an admin bring a new user in without an open signup endpoint.
// The opaque token is only ever stored as a fingerprint.
type Invite struct {
	ID        string
	TokenHash string
	Role      string  // role the redeemed account's profile gets
	CompanyID *string // optional company scoping for the new profile
	CreatedBy string
	ExpiresAt time.Time
	Used      bool
	UsedBy    string // empty until redeemed
	CreatedAt time.Time
	UpdatedAt time.Time
}
