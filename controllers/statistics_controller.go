package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type StatisticsController struct {
	DB *gorm.DB
}

func NewStatisticsController(db *gorm.DB) *StatisticsController {
	return &StatisticsController{DB: db}
}

// GetEarnings godoc
// @Summary Referral earnings summary
// @Router /statistics/earnings [get]
func (sc *StatisticsController) GetEarnings(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var total, pending float64
	sc.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", currentUser.UserID).
		Select("COALESCE(SUM(commission), 0)").
		Scan(&total)
	sc.DB.Model(&models.Booking{}).
		Joins("JOIN referrals ON referrals.booking_id = bookings.id").
		Where("referrals.referrer_id = ? AND bookings.commission_paid = false", currentUser.UserID).
		Select("COALESCE(SUM(bookings.commission_earned), 0)").
		Scan(&pending)

	var monthly []struct {
		Month  string  `json:"month"`
		Amount float64 `json:"amount"`
	}
	sc.DB.Model(&models.Referral{}).
		Select("to_char(created_at, 'YYYY-MM') AS month, SUM(commission) AS amount").
		Where("referrer_id = ? AND created_at > ?", currentUser.UserID, time.Now().AddDate(-1, 0, 0)).
		Group("to_char(created_at, 'YYYY-MM')").
		Order("month ASC").
		Scan(&monthly)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"totalEarnings":   total,
		"pendingEarnings": pending,
		"monthly":         monthly,
	})
}

// GetSportsPlayed godoc
// @Summary Per-sport activity rollup for a user
// @Router /statistics/sports/{userId} [get]
func (sc *StatisticsController) GetSportsPlayed(c *gin.Context) {
	userID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	var sports []struct {
		Sport        string `json:"sport"`
		TimesPlayed  int64  `json:"timesPlayed"`
		TotalMinutes int64  `json:"totalMinutes"`
	}
	sc.DB.Model(&models.Activity{}).
		Select("sport, COUNT(*) AS times_played, COALESCE(SUM(duration), 0) AS total_minutes").
		Where("user_id = ?", userID).
		Group("sport").
		Order("times_played DESC").
		Scan(&sports)

	c.JSON(http.StatusOK, gin.H{"success": true, "sports": sports})
}

// GetBusinessesPlayed godoc
// @Summary Venues a user has booked, with visit counts
// @Router /statistics/businesses/{userId} [get]
func (sc *StatisticsController) GetBusinessesPlayed(c *gin.Context) {
	userID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	var businesses []struct {
		BusinessID   uint   `json:"businessId"`
		BusinessName string `json:"businessName"`
		Visits       int64  `json:"visits"`
	}
	sc.DB.Model(&models.Booking{}).
		Select("bookings.business_id, users.business_name, COUNT(*) AS visits").
		Joins("JOIN users ON users.id = bookings.business_id").
		Where("bookings.user_id = ?", userID).
		Group("bookings.business_id, users.business_name").
		Order("visits DESC").
		Scan(&businesses)

	c.JSON(http.StatusOK, gin.H{"success": true, "businesses": businesses})
}

// LogActivity godoc
// @Summary Log a played sport on your profile
// @Router /statistics/activities [post]
func (sc *StatisticsController) LogActivity(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Sport       string `json:"sport" binding:"required"`
		Location    string `json:"location" binding:"required"`
		Date        string `json:"date" binding:"required"`
		Duration    int    `json:"duration" binding:"required,min=10"`
		PlayerCount int    `json:"playerCount" binding:"required,min=1"`
		Notes       string `json:"notes" binding:"omitempty,max=300"`
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

	activity := models.Activity{
		UserID:      currentUser.UserID,
		Sport:       input.Sport,
		Location:    input.Location,
		Date:        date,
		Duration:    input.Duration,
		PlayerCount: input.PlayerCount,
		Notes:       input.Notes,
	}
	if err := sc.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log activity", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "activity": activity})
}

// GetActivities godoc
// @Summary A user's activity log, newest first
// @Router /statistics/activities/{userId} [get]
func (sc *StatisticsController) GetActivities(c *gin.Context) {
	userID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	page, pageSize, offset := utils.ParsePagination(c)

	var activities []models.Activity
	sc.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&activities)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"activities": activities,
		"page":       page,
		"pageSize":   pageSize,
	})
}
