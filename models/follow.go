package models

import "time"

// Follow is one direction of the follow graph: follower -> following.
// Both endpoints' denormalized counters are maintained in the same
// transaction that creates or deletes a row.
type Follow struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FollowerUserID  uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followerUserId"`
	FollowingUserID uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followingUserId"`

	FollowerUser  User `gorm:"foreignKey:FollowerUserID" json:"-"`
	FollowingUser User `gorm:"foreignKey:FollowingUserID" json:"-"`
}
