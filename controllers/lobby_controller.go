package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type LobbyController struct {
	DB *gorm.DB
}

func NewLobbyController(db *gorm.DB) *LobbyController {
	return &LobbyController{DB: db}
}

// CreateLobby godoc
// @Summary Open a matchmaking lobby for a court slot
// @Router /lobbies [post]
func (lc *LobbyController) CreateLobby(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		CourtID     uint    `json:"courtId" binding:"required"`
		Date        string  `json:"date" binding:"required"`
		StartTime   string  `json:"startTime" binding:"required"`
		PlayerCount int     `json:"playerCount" binding:"required,min=2,max=22"`
		Radius      float64 `json:"radius"`
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
	if err := lc.DB.First(&court, input.CourtID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found", "success": false})
		return
	}
	if input.PlayerCount > court.MaxPlayers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player count exceeds court capacity", "success": false})
		return
	}

	lobby := models.Lobby{
		Sport:       court.Sport,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     start.Add(time.Duration(court.TimeSlotDuration) * time.Minute).Format("15:04"),
		City:        court.City,
		Zip:         court.Zip,
		Radius:      input.Radius,
		PlayerCount: input.PlayerCount,
		CourtID:     court.ID,
		CreatorID:   currentUser.UserID,
		Status:      models.LobbyStatusPending,
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lobby).Error; err != nil {
			return err
		}
		// Creator always occupies the first seat.
		return tx.Create(&models.LobbyPlayer{LobbyID: lobby.ID, UserID: currentUser.UserID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lobby", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "lobby": lobby})
}

// ListLobbies godoc
// @Summary Open lobbies filtered by sport and city
// @Router /lobbies [get]
func (lc *LobbyController) ListLobbies(c *gin.Context) {
	sport := c.Query("sport")
	city := c.Query("city")

	query := lc.DB.Preload("Players").Where("status = ?", models.LobbyStatusPending)
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var lobbies []models.Lobby
	query.Order("date ASC, start_time ASC").Limit(50).Find(&lobbies)

	type lobbyView struct {
		models.Lobby
		JoinedCount int `json:"joinedCount"`
		SpotsLeft   int `json:"spotsLeft"`
	}
	views := make([]lobbyView, 0, len(lobbies))
	for _, lobby := range lobbies {
		joined := len(lobby.Players)
		views = append(views, lobbyView{
			Lobby:       lobby,
			JoinedCount: joined,
			SpotsLeft:   lobby.PlayerCount - joined,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "lobbies": views})
}

// GetLobby godoc
// @Summary Lobby details with joined players
// @Router /lobbies/{id} [get]
func (lc *LobbyController) GetLobby(c *gin.Context) {
	lobbyID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lobby ID", "success": false})
		return
	}

	var lobby models.Lobby
	if err := lc.DB.Preload("Players.User").First(&lobby, lobbyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lobby not found", "success": false})
		return
	}

	players := make([]gin.H, 0, len(lobby.Players))
	for _, p := range lobby.Players {
		players = append(players, gin.H{
			"userId":   p.UserID,
			"username": p.User.Username,
			"avatar":   p.User.Avatar,
			"joinedAt": p.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "lobby": lobby, "players": players})
}

// JoinLobby godoc
// @Summary Take a seat in a lobby
// @Router /lobbies/{id}/join [post]
func (lc *LobbyController) JoinLobby(c *gin.Context) {
	currentUser := utils.GetUser(c)
	lobbyID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lobby ID", "success": false})
		return
	}

	var lobby models.Lobby
	// Capacity check and seat insert run in one transaction; when the
	// last seat fills the lobby flips to payment-pending with a deadline.
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lobby, lobbyID).Error; err != nil {
			return fmt.Errorf("lobby not found")
		}
		if lobby.Status != models.LobbyStatusPending {
			return fmt.Errorf("lobby is no longer open")
		}

		var joined int64
		if err := tx.Model(&models.LobbyPlayer{}).Where("lobby_id = ?", lobby.ID).Count(&joined).Error; err != nil {
			return err
		}
		if joined >= int64(lobby.PlayerCount) {
			return fmt.Errorf("lobby is full")
		}

		var already int64
		tx.Model(&models.LobbyPlayer{}).
			Where("lobby_id = ? AND user_id = ?", lobby.ID, currentUser.UserID).
			Count(&already)
		if already > 0 {
			return fmt.Errorf("already joined this lobby")
		}

		if err := tx.Create(&models.LobbyPlayer{LobbyID: lobby.ID, UserID: currentUser.UserID}).Error; err != nil {
			return err
		}

		if joined+1 == int64(lobby.PlayerCount) {
			deadline := time.Now().Add(30 * time.Minute)
			lobby.Status = models.LobbyStatusPaymentPending
			lobby.PaymentDeadline = &deadline
			return tx.Save(&lobby).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "lobby": lobby})
}

// LeaveLobby godoc
// @Summary Give up your lobby seat
// @Router /lobbies/{id}/leave [post]
func (lc *LobbyController) LeaveLobby(c *gin.Context) {
	currentUser := utils.GetUser(c)
	lobbyID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lobby ID", "success": false})
		return
	}

	var lobby models.Lobby
	if err := lc.DB.First(&lobby, lobbyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lobby not found", "success": false})
		return
	}
	if lobby.Status == models.LobbyStatusConfirmed {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot leave a confirmed lobby", "success": false})
		return
	}
	if lobby.CreatorID == currentUser.UserID {
		c.JSON(http.StatusConflict, gin.H{"error": "The creator cannot leave their own lobby", "success": false})
		return
	}

	result := lc.DB.Where("lobby_id = ? AND user_id = ?", lobby.ID, currentUser.UserID).
		Delete(&models.LobbyPlayer{})
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Not a member of this lobby", "success": false})
		return
	}

	// A departure from payment-pending reopens the lobby.
	if lobby.Status == models.LobbyStatusPaymentPending {
		lobby.Status = models.LobbyStatusPending
		lobby.PaymentDeadline = nil
		lc.DB.Save(&lobby)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Left lobby"})
}

// ConfirmLobby godoc
// @Summary Confirm a fully paid lobby and book the court
// @Router /lobbies/{id}/confirm [post]
func (lc *LobbyController) ConfirmLobby(c *gin.Context) {
	currentUser := utils.GetUser(c)
	lobbyID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lobby ID", "success": false})
		return
	}

	var lobby models.Lobby
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lobby, lobbyID).Error; err != nil {
			return fmt.Errorf("lobby not found")
		}
		if lobby.CreatorID != currentUser.UserID {
			return fmt.Errorf("only the creator can confirm the lobby")
		}
		if lobby.Status != models.LobbyStatusPaymentPending {
			return fmt.Errorf("lobby is not awaiting confirmation")
		}

		lobby.Status = models.LobbyStatusConfirmed
		if err := tx.Save(&lobby).Error; err != nil {
			return err
		}

		booking := models.CourtBooking{
			CourtID:   lobby.CourtID,
			UserID:    lobby.CreatorID,
			Date:      lobby.Date,
			StartTime: lobby.StartTime,
			EndTime:   lobby.EndTime,
			Players:   lobby.PlayerCount,
			Status:    models.BookingStatusConfirmed,
			LobbyID:   &lobby.ID,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "lobby": lobby})
}
