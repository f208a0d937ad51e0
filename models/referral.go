package models

import "time"

// Referral tracks a commission earned by a referrer when a booking was
// made through their referral code.
type Referral struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReferrerID uint    `gorm:"not null;index" json:"referrerId"`
	BusinessID uint    `gorm:"not null" json:"businessId"`
	Sport      string  `gorm:"not null" json:"sport"`
	Commission float64 `gorm:"not null;default:0" json:"commission"`
	BookingID  *uint   `json:"bookingId,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`

	Referrer User `gorm:"foreignKey:ReferrerID" json:"-"`
	Business User `gorm:"foreignKey:BusinessID" json:"-"`
}

type Booking struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint      `gorm:"not null;index" json:"userId"`
	BusinessID uint      `gorm:"not null" json:"businessId"`
	Sport      string    `gorm:"not null" json:"sport"`
	Date       time.Time `gorm:"not null" json:"date"`
	Duration   int       `gorm:"not null" json:"duration"` // minutes
	Amount     float64   `gorm:"not null" json:"amount"`

	ReferralCode     string  `json:"referralCode,omitempty"`
	Status           string  `gorm:"not null;default:'confirmed'" json:"status"`
	CommissionEarned float64 `gorm:"not null;default:0" json:"commissionEarned"`
	CommissionPaid   bool    `gorm:"default:false" json:"commissionPaid"`

	User     User `gorm:"foreignKey:UserID" json:"-"`
	Business User `gorm:"foreignKey:BusinessID" json:"-"`
}
