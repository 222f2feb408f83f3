package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttendanceEntry is one trip by one porter on one day.
// ComputedCost is copied from the commute cost at creation or route change
// and is never recomputed afterwards.
type AttendanceEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date           time.Time       `gorm:"type:date;not null;index"`
	CarrierID      uuid.UUID       `gorm:"type:uuid;not null"`
	PorterID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationFromID uuid.UUID       `gorm:"type:uuid;not null"`
	LocationToID   uuid.UUID       `gorm:"type:uuid;not null"`
	Task           string          `gorm:"not null;default:''"`
	CommuteCostID  uuid.UUID       `gorm:"type:uuid;not null"`
	ComputedCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedByID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt      time.Time       `gorm:"index"`
	UpdatedAt      time.Time
}

func (AttendanceEntry) TableName() string { return "attendance_entries" }

func (a *AttendanceEntry) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
