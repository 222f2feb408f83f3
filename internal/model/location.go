package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a pickup or drop-off point. Code is stored upper-cased.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Location) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
