package models

import "time"

type Block struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BlockerUserID uint `gorm:"not null;uniqueIndex:idx_block_pair" json:"blockerUserId"`
	BlockedUserID uint `gorm:"not null;uniqueIndex:idx_block_pair" json:"blockedUserId"`

	BlockerUser User `gorm:"foreignKey:BlockerUserID" json:"-"`
	BlockedUser User `gorm:"foreignKey:BlockedUserID" json:"-"`
}
