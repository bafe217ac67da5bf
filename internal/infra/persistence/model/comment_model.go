package model

import "time"

// CommentModel mirrors the 'comments' table. Username is the denormalized
// author name captured from the verified token, not a FK to users.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Text      string `gorm:"type:text;not null"`
	Username  string `gorm:"type:varchar(50);not null"`
	Timestamp time.Time
	PostID    int64 `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}
