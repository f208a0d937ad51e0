package models

import (
	"time"

	"gorm.io/gorm"
)

type Promotion struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID         uint      `gorm:"not null;index" json:"businessId"`
	Title              string    `gorm:"not null" json:"title"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	DiscountPercentage int       `gorm:"not null;check:discount_percentage between 1 and 100" json:"discountPercentage"`
	PromoCode          string    `gorm:"unique;not null" json:"promoCode"`
	ValidUntil         time.Time `gorm:"not null" json:"validUntil"`

	// MaxClaims nil means unlimited
	MaxClaims   *int `json:"maxClaims,omitempty"`
	ClaimsCount int  `gorm:"not null;default:0" json:"claimsCount"`
	IsActive    bool `gorm:"default:true" json:"isActive"`

	Business User `gorm:"foreignKey:BusinessID" json:"-"`
}

type PromotionClaim struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PromotionID uint `gorm:"not null;uniqueIndex:idx_promo_claim" json:"promotionId"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_promo_claim" json:"userId"`
}
