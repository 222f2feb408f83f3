package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommuteCost prices one directional route for one carrier.
// At most one row exists per (from, to, carrier).
type CommuteCost struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FromLocationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_commute_route,priority:1"`
	ToLocationID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_commute_route,priority:2"`
	CarrierID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_commute_route,priority:3"`
	Cost           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active         bool            `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *CommuteCost) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
