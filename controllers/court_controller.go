package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type CourtController struct {
	DB *gorm.DB
}

func NewCourtController(db *gorm.DB) *CourtController {
	return &CourtController{DB: db}
}

// CreateCourt godoc
// @Summary Register a court (business accounts only)
// @Router /courts [post]
func (cc *CourtController) CreateCourt(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser.UserType != models.AccountTypeBusiness {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only business accounts can register courts", "success": false})
		return
	}

	var input struct {
		Name             string   `json:"name" binding:"required"`
		Sport            string   `json:"sport" binding:"required,oneof=padel tennis soccer basketball"`
		Address          string   `json:"address"`
		City             string   `json:"city" binding:"required"`
		Zip              string   `json:"zip"`
		PricePerHour     float64  `json:"pricePerHour" binding:"required,gt=0"`
		TimeSlotDuration int      `json:"timeSlotDuration" binding:"omitempty,min=30,max=180"`
		MaxPlayers       int      `json:"maxPlayers" binding:"required,min=2"`
		CourtCount       int      `json:"courtCount"`
		Amenities        []string `json:"amenities"`
		OpeningTime      string   `json:"openingTime"`
		ClosingTime      string   `json:"closingTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	court := models.Court{
		BusinessID:       currentUser.UserID,
		Name:             input.Name,
		Sport:            input.Sport,
		Address:          input.Address,
		City:             input.City,
		Zip:              input.Zip,
		PricePerHour:     input.PricePerHour,
		TimeSlotDuration: input.TimeSlotDuration,
		MaxPlayers:       input.MaxPlayers,
		CourtCount:       input.CourtCount,
		Amenities:        pq.StringArray(input.Amenities),
	}
	if court.TimeSlotDuration == 0 {
		court.TimeSlotDuration = 60
	}
	if court.CourtCount == 0 {
		court.CourtCount = 1
	}
	if input.OpeningTime != "" {
		court.OpeningTime = input.OpeningTime
	}
	if input.ClosingTime != "" {
		court.ClosingTime = input.ClosingTime
	}

	if err := cc.DB.Create(&court).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create court", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "court": court})
}

// SearchCourts godoc
// @Summary Find courts by sport and city
// @Router /courts [get]
func (cc *CourtController) SearchCourts(c *gin.Context) {
	sport := c.Query("sport")
	city := c.Query("city")

	query := cc.DB.Model(&models.Court{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var courts []models.Court
	query.Order("price_per_hour ASC").Limit(50).Find(&courts)

	c.JSON(http.StatusOK, gin.H{"success": true, "courts": courts})
}

// GetCourtAvailability godoc
// @Summary Free time slots for a court on a date
// @Router /courts/{id}/availability [get]
func (cc *CourtController) GetCourtAvailability(c *gin.Context) {
	courtID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID", "success": false})
		return
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required as YYYY-MM-DD", "success": false})
		return
	}

	var court models.Court
	if err := cc.DB.First(&court, courtID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found", "success": false})
		return
	}

	slots, err := availableSlots(cc.DB, &court, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "slots": slots})
}

type timeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// availableSlots walks the court's opening hours in slot-duration steps
// and marks a slot unavailable once bookings reach the court count.
func availableSlots(db *gorm.DB, court *models.Court, date string) ([]timeSlot, error) {
	open, err := time.Parse("15:04", court.OpeningTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := time.Parse("15:04", court.ClosingTime)
	if err != nil {
		return nil, err
	}

	step := time.Duration(court.TimeSlotDuration) * time.Minute
	var slots []timeSlot
	for start := open; start.Add(step).Compare(closeAt) <= 0; start = start.Add(step) {
		startStr := start.Format("15:04")
		endStr := start.Add(step).Format("15:04")

		var taken int64
		err := db.Model(&models.CourtBooking{}).
			Where("court_id = ? AND date = ? AND start_time = ? AND status IN ?",
				court.ID, date, startStr, []string{models.BookingStatusHeld, models.BookingStatusPending, models.BookingStatusConfirmed}).
			Count(&taken).Error
		if err != nil {
			return nil, err
		}

		slots = append(slots, timeSlot{
			StartTime: startStr,
			EndTime:   endStr,
			Available: taken < int64(court.CourtCount),
		})
	}
	return slots, nil
}

// BookCourt godoc
// @Summary Hold a court slot
// @Router /courts/{id}/book [post]
func (cc *CourtController) BookCourt(c *gin.Context) {
	currentUser := utils.GetUser(c)
	courtID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID", "success": false})
		return
	}

	var input struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
		Players   int    `json:"players" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD", "success": false})
		return
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startTime must be HH:MM", "success": false})
		return
	}

	var court models.Court
	if err := cc.DB.First(&court, courtID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found", "success": false})
		return
	}
	endTime := start.Add(time.Duration(court.TimeSlotDuration) * time.Minute).Format("15:04")

	var booking models.CourtBooking
	// Slot capacity is checked and the hold created inside one
	// transaction so two racing requests cannot both take the last
	// court.
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.CourtBooking{}).
			Where("court_id = ? AND date = ? AND start_time = ? AND status IN ?",
				court.ID, input.Date, input.StartTime,
				[]string{models.BookingStatusHeld, models.BookingStatusPending, models.BookingStatusConfirmed}).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(court.CourtCount) {
			return fmt.Errorf("slot is fully booked")
		}

		booking = models.CourtBooking{
			CourtID:   court.ID,
			UserID:    currentUser.UserID,
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   endTime,
			Players:   input.Players,
			Status:    models.BookingStatusHeld,
		}
		if booking.Players == 0 {
			booking.Players = 1
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

// CancelBooking godoc
// @Summary Cancel your booking
// @Router /bookings/{id}/cancel [post]
func (cc *CourtController) CancelBooking(c *gin.Context) {
	currentUser := utils.GetUser(c)
	bookingID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID", "success": false})
		return
	}

	var booking models.CourtBooking
	if err := cc.DB.First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found", "success": false})
		return
	}
	if booking.UserID != currentUser.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only cancel your own bookings", "success": false})
		return
	}
	if booking.Status == models.BookingStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already cancelled", "success": false})
		return
	}

	booking.Status = models.BookingStatusCancelled
	if err := cc.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// GetMyBookings godoc
// @Summary List your bookings
// @Router /bookings [get]
func (cc *CourtController) GetMyBookings(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var bookings []models.CourtBooking
	cc.DB.Where("user_id = ?", currentUser.UserID).
		Order("date DESC, start_time DESC").
		Limit(100).
		Find(&bookings)

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}
