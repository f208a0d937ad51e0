package models

import "time"

// Activity is a played-sport log entry shown on a user's profile.
type Activity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      uint      `gorm:"not null;index" json:"userId"`
	Sport       string    `gorm:"not null" json:"sport"`
	Location    string    `gorm:"not null" json:"location"`
	Date        time.Time `gorm:"not null" json:"date"`
	Duration    int       `gorm:"not null" json:"duration"` // minutes
	PlayerCount int       `gorm:"not null" json:"playerCount"`
	Notes       string    `json:"notes,omitempty"`
}
