package models

import "time"

// Review is immutable once created except for the Response field, which
// only the reviewee may set. At most one review exists per ordered
// (reviewer, reviewee) pair.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReviewerID uint `gorm:"not null;uniqueIndex:idx_review_pair" json:"reviewerId"`
	RevieweeID uint `gorm:"not null;uniqueIndex:idx_review_pair" json:"revieweeId"`

	Content  string        `gorm:"type:text;not null" json:"content"`
	Ratings  ReviewRatings `gorm:"type:jsonb" json:"ratings"`
	Response string        `gorm:"type:text" json:"response,omitempty"`

	Reviewer User `gorm:"foreignKey:ReviewerID" json:"-"`
	Reviewee User `gorm:"foreignKey:RevieweeID" json:"-"`
}
