package domain

// BootstrapData seeds the first admin account on an empty database.
type BootstrapData struct {
	AdminEmail    string
	AdminPassword string
}
