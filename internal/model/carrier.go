package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Carrier names form a closed set.
const (
	CarrierPorter      = "porter"
	CarrierSmallDonkey = "small-donkey"
	CarrierPickupTruck = "pickup-truck"
)

// CarrierNames lists the accepted carrier names.
var CarrierNames = []string{CarrierPorter, CarrierSmallDonkey, CarrierPickupTruck}

// Carrier is a transport mode with a fixed capacity.
type Carrier struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CapacityKg int       `gorm:"not null;default:0"`
	Active     bool      `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c *Carrier) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
