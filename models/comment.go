package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PostID   uint   `gorm:"not null;index" json:"postId"`
	AuthorID uint   `gorm:"not null" json:"authorId"`
	Content  string `gorm:"type:text;not null" json:"content"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
