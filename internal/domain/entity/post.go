package entity

import "time"

// Post is an image post published by a user. The timestamp is assigned by the
// server at creation in UTC and never changes; only the image fields and the
// caption are mutable, and only by the owner.
type Post struct {
	ID           int64
	ImageURL     string
	ImageURLType string // Tag describing the image reference, e.g. "absolute" or "relative".
	Caption      string
	Timestamp    time.Time
	UserID       int64 // The owning user.
	Owner        *User // Loaded alongside the post for display. May be nil on writes.
}
