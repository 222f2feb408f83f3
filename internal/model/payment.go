package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment tracks the cumulative amount paid to a porter for one month.
// IsPaid always equals Amount > 0.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PorterID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payment_period,priority:1"`
	Year        int             `gorm:"not null;uniqueIndex:idx_payment_period,priority:2"`
	Month       int             `gorm:"not null;uniqueIndex:idx_payment_period,priority:3"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsPaid      bool            `gorm:"not null;default:false"`
	PaidAt      *time.Time
	Notes       string     `gorm:"not null;default:''"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
