package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Porter is a worker who carries goods between locations.
// Porters are never hard-deleted: attendance rows keep referencing them.
type Porter struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UID         string    `gorm:"column:uid;uniqueIndex;not null"`
	Name        string    `gorm:"not null;index"`
	Designation string    `gorm:"not null;default:''"`
	AccountNo   string    `gorm:"not null;default:''"`
	FatherName  string    `gorm:"not null;default:''"`
	Active      bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Porter) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
