package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AccountTypeIndividual = "user"
	AccountTypeBusiness   = "business"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string  `gorm:"unique;not null" json:"username"`
	Email    string  `gorm:"unique;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Phone    *string `gorm:"unique" json:"phone"`
	UserType string  `gorm:"not null;default:'user'" json:"userType"` // user | business

	// Individual profile fields, empty for business accounts
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Gender    string     `json:"gender"`
	Birthday  *time.Time `json:"birthday"`

	// Business profile fields
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Website      string `json:"website"`

	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
	IsVerified bool   `gorm:"default:false" json:"isVerified"`

	// Denormalized graph counters. Always written inside the same
	// transaction as the follow edges they summarize.
	FollowersCount int64 `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int64 `gorm:"not null;default:0" json:"followingCount"`

	// Recomputed by the rating service on every review submission,
	// never hand-edited.
	AverageRatings         RatingMap `gorm:"type:jsonb" json:"averageRatings"`
	AverageFacilityRatings RatingMap `gorm:"type:jsonb" json:"averageFacilityRatings"`

	ReferralCode          *string `gorm:"uniqueIndex" json:"referralCode,omitempty"`
	TotalCommissionEarned float64 `gorm:"not null;default:0" json:"totalCommissionEarned"`

	LocationPrefs string `json:"locationPrefs"`
	NotifyEmail   bool   `gorm:"default:true" json:"notifyEmail"`
	NotifyPush    bool   `gorm:"default:true" json:"notifyPush"`

	Followers []User `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowingUserID;References:ID;joinReferences:FollowerUserID"`
	Following []User `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowerUserID;References:ID;joinReferences:FollowingUserID"`
}

// IsBusiness reports whether the account is a business account, which
// selects the facility rating dimension set.
func (u *User) IsBusiness() bool {
	return u.UserType == AccountTypeBusiness
}
