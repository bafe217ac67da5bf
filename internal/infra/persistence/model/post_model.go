package model

import "time"

// PostModel mirrors the 'posts' table. Timestamp is assigned by the
// application at creation, not by GORM's autoCreateTime.
type PostModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	ImageURL     string `gorm:"type:text;not null"`
	ImageURLType string `gorm:"type:varchar(20);not null"`
	Caption      string `gorm:"type:text"`
	Timestamp    time.Time
	UserID       int64 `gorm:"not null;index"`

	User     *UserModel     `gorm:"foreignKey:UserID"`
	Comments []CommentModel `gorm:"foreignKey:PostID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
