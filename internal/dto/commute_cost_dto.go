package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCommuteCostRequest struct {
	FromLocationID string           `json:"fromLocationId" validate:"required,uuid"`
	ToLocationID   string           `json:"toLocationId"   validate:"required,uuid"`
	CarrierID      string           `json:"carrierId"      validate:"required,uuid"`
	Cost           *decimal.Decimal `json:"cost"           validate:"required,min=0"`
	Active         *bool            `json:"active"`
}

type UpdateCommuteCostRequest struct {
	FromLocationID *string          `json:"fromLocationId" validate:"omitempty,uuid"`
	ToLocationID   *string          `json:"toLocationId"   validate:"omitempty,uuid"`
	CarrierID      *string          `json:"carrierId"      validate:"omitempty,uuid"`
	Cost           *decimal.Decimal `json:"cost"           validate:"omitempty,min=0"`
	Active         *bool            `json:"active"`
}

type CommuteCostFilter struct {
	From    string `form:"from"    validate:"omitempty,uuid"`
	To      string `form:"to"      validate:"omitempty,uuid"`
	Carrier string `form:"carrier" validate:"omitempty,uuid"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type FindCommuteCostQuery struct {
	FromLocationID string `form:"fromLocationId" validate:"required,uuid"`
	ToLocationID   string `form:"toLocationId"   validate:"required,uuid"`
	CarrierID      string `form:"carrierId"      validate:"required,uuid"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CommuteCostResponse struct {
	ID           uuid.UUID       `json:"id"`
	FromLocation LocationRef     `json:"fromLocation"`
	ToLocation   LocationRef     `json:"toLocation"`
	Carrier      CarrierRef      `json:"carrier"`
	Cost         decimal.Decimal `json:"cost"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type CommuteCostListResponse struct {
	CommuteCosts []CommuteCostResponse `json:"commuteCosts"`
	Total        int64                 `json:"total"`
	CurrentPage  int                   `json:"currentPage"`
	TotalPages   int                   `json:"totalPages"`
}

// ── CSV import ────────────────────────────────────────────────────────────────

type ImportRowError struct {
	Row   int               `json:"row"`
	Data  map[string]string `json:"data"`
	Error string            `json:"error"`
}

type ImportResult struct {
	SuccessCount int              `json:"successCount"`
	ErrorCount   int              `json:"errorCount"`
	Errors       []ImportRowError `json:"errors"` // first 10 only
}
