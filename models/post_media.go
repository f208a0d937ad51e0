package models

import "time"

type PostMedia struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PostID    uint   `gorm:"not null;index" json:"postId"`
	URL       string `gorm:"not null" json:"url"`
	MediaType string `gorm:"not null" json:"mediaType"` // image | video
}
