package models

import "time"

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID         uint      `json:"userId" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	Token          string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
}
