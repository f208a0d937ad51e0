package models

import "time"

const (
	LobbyStatusPending        = "pending"
	LobbyStatusPaymentPending = "payment-pending"
	LobbyStatusConfirmed      = "confirmed"
)

// Lobby is an open matchmaking room for a court slot. Players join until
// PlayerCount is reached, then the lobby moves to payment-pending.
type Lobby struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sport     string `gorm:"not null" json:"sport"`
	Date      string `gorm:"not null" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"not null" json:"startTime"`
	EndTime   string `gorm:"not null" json:"endTime"`

	City   string  `gorm:"not null" json:"city"`
	Zip    string  `json:"zip"`
	Radius float64 `json:"radius"`

	PlayerCount int    `gorm:"not null" json:"playerCount"`
	CourtID     uint   `gorm:"not null" json:"courtId"`
	CreatorID   uint   `gorm:"not null" json:"creatorId"`
	Status      string `gorm:"not null;default:'pending'" json:"status"`

	PaymentDeadline *time.Time `json:"paymentDeadline,omitempty"`

	Court   Court         `gorm:"foreignKey:CourtID" json:"-"`
	Creator User          `gorm:"foreignKey:CreatorID" json:"-"`
	Players []LobbyPlayer `gorm:"foreignKey:LobbyID" json:"players,omitempty"`
}

type LobbyPlayer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	LobbyID uint `gorm:"not null;uniqueIndex:idx_lobby_player" json:"lobbyId"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_lobby_player" json:"userId"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
