package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AuthorID uint   `gorm:"not null;index" json:"authorId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Shares   int64  `gorm:"not null;default:0" json:"shares"`

	Author   User        `gorm:"foreignKey:AuthorID" json:"-"`
	Media    []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	Comments []Comment   `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes    []Like      `gorm:"foreignKey:PostID" json:"-"`
}
