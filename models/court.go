package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Court struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID uint   `gorm:"not null;index" json:"businessId"`
	Name       string `gorm:"not null" json:"name"`
	Sport      string `gorm:"not null" json:"sport"`

	Address string `json:"address"`
	City    string `gorm:"index" json:"city"`
	Zip     string `json:"zip"`

	PricePerHour     float64        `gorm:"not null" json:"pricePerHour"`
	TimeSlotDuration int            `gorm:"not null;default:60" json:"timeSlotDuration"` // minutes
	MaxPlayers       int            `gorm:"not null" json:"maxPlayers"`
	CourtCount       int            `gorm:"not null;default:1" json:"courtCount"`
	Amenities        pq.StringArray `gorm:"type:text[]" json:"amenities"`
	OpeningTime      string         `gorm:"default:'08:00'" json:"openingTime"` // HH:MM
	ClosingTime      string         `gorm:"default:'22:00'" json:"closingTime"` // HH:MM

	Business User `gorm:"foreignKey:BusinessID" json:"-"`
}

const (
	BookingStatusHeld      = "held"
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type CourtBooking struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CourtID uint   `gorm:"not null;index:idx_court_slot" json:"courtId"`
	UserID  uint   `gorm:"not null" json:"userId"`
	Date    string `gorm:"not null;index:idx_court_slot" json:"date"` // YYYY-MM-DD

	StartTime string `gorm:"not null;index:idx_court_slot" json:"startTime"` // HH:MM
	EndTime   string `gorm:"not null" json:"endTime"`
	Players   int    `gorm:"not null;default:1" json:"players"`
	Status    string `gorm:"not null;default:'held'" json:"status"`

	LobbyID         *uint  `json:"lobbyId,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`

	Court Court `gorm:"foreignKey:CourtID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
