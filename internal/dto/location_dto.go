package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Code string `json:"code" validate:"required,min=1,max=20"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateLocationRequest struct {
	Code   *string `json:"code"   validate:"omitempty,min=1,max=20"`
	Name   *string `json:"name"   validate:"omitempty,min=1,max=100"`
	Active *bool   `json:"active"`
}

type LocationFilter struct {
	Active string `form:"active"`
	Search string `form:"search"`
}

type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
