package models

import "time"

type Like struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PostID uint `gorm:"not null;uniqueIndex:idx_like_pair" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_like_pair" json:"userId"`
}
