package entity

import "time"

// Comment is a remark left on a post by any authenticated user.
// The author is captured as a plain username taken from the verified token,
// not as a foreign key to the users table.
type Comment struct {
	ID        int64
	Text      string
	Username  string
	Timestamp time.Time
	PostID    int64
}
