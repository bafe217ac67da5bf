// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User represents a registered account. Accounts are immutable after
// registration; there is no update or delete path for them.
type User struct {
	ID           int64     // Auto-incremented identifier assigned by the database.
	Username     string    // Globally unique login name.
	Email        string    // Globally unique contact email.
	PasswordHash string    // bcrypt digest of the password. Never leaves the service.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// Identity is the authenticated caller, produced only by the auth middleware
// from verified token claims. Handlers must never construct one themselves.
type Identity struct {
	UserID   int64
	Username string
}
