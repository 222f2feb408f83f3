package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCarrierRequest struct {
	Name       string `json:"name"       validate:"required,oneof=porter small-donkey pickup-truck"`
	CapacityKg *int   `json:"capacityKg" validate:"required,min=0"`
}

type UpdateCarrierRequest struct {
	Name       *string `json:"name"       validate:"omitempty,oneof=porter small-donkey pickup-truck"`
	CapacityKg *int    `json:"capacityKg" validate:"omitempty,min=0"`
	Active     *bool   `json:"active"`
}

type CarrierResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CapacityKg int       `json:"capacityKg"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
