package domain

import "time"

// Account is a login identity. Everything the application knows about the
// person behind it lives in Profile, created in the same transaction.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
