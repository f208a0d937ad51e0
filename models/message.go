package models

import "time"

// Message is a direct message between two users, persisted before
// realtime delivery.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SenderID    uint   `gorm:"not null;index:idx_msg_pair" json:"senderId"`
	RecipientID uint   `gorm:"not null;index:idx_msg_pair" json:"recipientId"`
	Content     string `gorm:"type:text;not null" json:"content"`

	ReadAt *time.Time `json:"readAt,omitempty"`

	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
