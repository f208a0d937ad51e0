package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type PromotionController struct {
	DB *gorm.DB
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{DB: db}
}

// CreatePromotion godoc
// @Summary Publish a promotion (business accounts only)
// @Router /promotions [post]
func (pc *PromotionController) CreatePromotion(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser.UserType != models.AccountTypeBusiness {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only business accounts can create promotions", "success": false})
		return
	}

	var input struct {
		Title              string `json:"title" binding:"required,max=100"`
		Description        string `json:"description" binding:"required,max=500"`
		DiscountPercentage int    `json:"discountPercentage" binding:"required,min=1,max=100"`
		PromoCode          string `json:"promoCode" binding:"required,min=4,max=20"`
		ValidUntil         string `json:"validUntil" binding:"required"`
		MaxClaims          *int   `json:"maxClaims" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	validUntil, err := time.Parse("2006-01-02", input.ValidUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validUntil must be YYYY-MM-DD", "success": false})
		return
	}
	if validUntil.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validUntil must be in the future", "success": false})
		return
	}

	promotion := models.Promotion{
		BusinessID:         currentUser.UserID,
		Title:              input.Title,
		Description:        input.Description,
		DiscountPercentage: input.DiscountPercentage,
		PromoCode:          strings.ToUpper(strings.TrimSpace(input.PromoCode)),
		ValidUntil:         validUntil,
		MaxClaims:          input.MaxClaims,
		IsActive:           true,
	}
	if err := pc.DB.Create(&promotion).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Promo code already in use", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "promotion": promotion})
}

// ListPromotions godoc
// @Summary Active promotions, newest first
// @Router /promotions [get]
func (pc *PromotionController) ListPromotions(c *gin.Context) {
	page, pageSize, offset := utils.ParsePagination(c)

	query := pc.DB.Where("is_active = true AND valid_until > ?", time.Now())
	if businessID := c.Query("businessId"); businessID != "" {
		query = query.Where("business_id = ?", businessID)
	}

	var promotions []models.Promotion
	query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&promotions)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"promotions": promotions,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// ClaimPromotion godoc
// @Summary Claim a promotion once
// @Router /promotions/{id}/claim [post]
func (pc *PromotionController) ClaimPromotion(c *gin.Context) {
	currentUser := utils.GetUser(c)
	promotionID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID", "success": false})
		return
	}

	var promotion models.Promotion
	// Claim slot check and counter bump share one transaction so a
	// limited promotion cannot be over-claimed.
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&promotion, promotionID).Error; err != nil {
			return fmt.Errorf("promotion not found")
		}
		if !promotion.IsActive || promotion.ValidUntil.Before(time.Now()) {
			return fmt.Errorf("promotion is no longer active")
		}
		if promotion.MaxClaims != nil && promotion.ClaimsCount >= *promotion.MaxClaims {
			return fmt.Errorf("promotion has reached its claim limit")
		}

		var already int64
		tx.Model(&models.PromotionClaim{}).
			Where("promotion_id = ? AND user_id = ?", promotion.ID, currentUser.UserID).
			Count(&already)
		if already > 0 {
			return fmt.Errorf("promotion already claimed")
		}

		if err := tx.Create(&models.PromotionClaim{
			PromotionID: promotion.ID,
			UserID:      currentUser.UserID,
		}).Error; err != nil {
			return err
		}

		promotion.ClaimsCount++
		return tx.Save(&promotion).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"promoCode": promotion.PromoCode,
		"discount":  promotion.DiscountPercentage,
	})
}

// DeactivatePromotion godoc
// @Summary Turn off one of your promotions
// @Router /promotions/{id} [delete]
func (pc *PromotionController) DeactivatePromotion(c *gin.Context) {
	currentUser := utils.GetUser(c)
	promotionID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID", "success": false})
		return
	}

	var promotion models.Promotion
	if err := pc.DB.First(&promotion, promotionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found", "success": false})
		return
	}
	if promotion.BusinessID != currentUser.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only manage your own promotions", "success": false})
		return
	}

	promotion.IsActive = false
	if err := pc.DB.Save(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate promotion", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotion deactivated"})
}

// GetReferralCode godoc
// @Summary Get or generate your referral code
// @Router /referrals/code [get]
func (pc *PromotionController) GetReferralCode(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var user models.User
	if err := pc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	if user.ReferralCode == nil {
		code := utils.GenerateReferralCode()
		user.ReferralCode = &code
		if err := pc.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate referral code", "success": false})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "referralCode": *user.ReferralCode})
}

// RecordBooking godoc
// @Summary Record a completed booking and credit referral commission
// @Router /referrals/bookings [post]
func (pc *PromotionController) RecordBooking(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		BusinessID   uint    `json:"businessId" binding:"required"`
		Sport        string  `json:"sport" binding:"required"`
		Date         string  `json:"date" binding:"required"`
		Duration     int     `json:"duration" binding:"required,min=30"`
		Amount       float64 `json:"amount" binding:"required,gt=0"`
		ReferralCode string  `json:"referralCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD", "success": false})
		return
	}

	booking := models.Booking{
		UserID:       currentUser.UserID,
		BusinessID:   input.BusinessID,
		Sport:        input.Sport,
		Date:         date,
		Duration:     input.Duration,
		Amount:       input.Amount,
		ReferralCode: input.ReferralCode,
		Status:       "confirmed",
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		var referrer *models.User
		if input.ReferralCode != "" {
			var candidate models.User
			err := tx.Where("referral_code = ?", input.ReferralCode).First(&candidate).Error
			// A stale or mistyped code does not block the booking.
			if err == nil && candidate.ID != currentUser.UserID {
				referrer = &candidate
				booking.CommissionEarned = booking.Amount * referralCommissionRate
			}
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if referrer != nil {
			referral := models.Referral{
				ReferrerID: referrer.ID,
				BusinessID: booking.BusinessID,
				Sport:      booking.Sport,
				Commission: booking.CommissionEarned,
				BookingID:  &booking.ID,
				ExpiresAt:  time.Now().AddDate(0, 6, 0),
			}
			if err := tx.Create(&referral).Error; err != nil {
				return err
			}
			referrer.TotalCommissionEarned += booking.CommissionEarned
			return tx.Save(referrer).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record booking", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

// referralCommissionRate is the referrer's cut of a referred booking.
const referralCommissionRate = 0.05
