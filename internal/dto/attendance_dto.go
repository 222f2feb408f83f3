package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateAttendanceRequest struct {
	Date           string `json:"date"           validate:"required"`
	CarrierID      string `json:"carrierId"      validate:"required,uuid"`
	PorterID       string `json:"porterId"       validate:"required,uuid"`
	LocationFromID string `json:"locationFromId" validate:"required,uuid"`
	LocationToID   string `json:"locationToId"   validate:"required,uuid"`
	Task           string `json:"task"           validate:"max=500"`
}

// UpdateAttendanceRequest is a partial update; nil fields keep their value.
type UpdateAttendanceRequest struct {
	Date           *string `json:"date"`
	CarrierID      *string `json:"carrierId"      validate:"omitempty,uuid"`
	PorterID       *string `json:"porterId"       validate:"omitempty,uuid"`
	LocationFromID *string `json:"locationFromId" validate:"omitempty,uuid"`
	LocationToID   *string `json:"locationToId"   validate:"omitempty,uuid"`
	Task           *string `json:"task"           validate:"omitempty,max=500"`
}

// RouteChanged reports whether the update touches the priced triple.
func (r UpdateAttendanceRequest) RouteChanged() bool {
	return r.CarrierID != nil || r.LocationFromID != nil || r.LocationToID != nil
}

type AttendanceFilter struct {
	Date      string `form:"date"`      // YYYY-MM-DD
	Month     string `form:"month"`     // YYYY-MM
	StartDate string `form:"startDate"` // inclusive, with EndDate
	EndDate   string `form:"endDate"`
	PorterID  string `form:"porterId" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=1000"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// AttendanceResponse is the fully resolved read model of an entry.
type AttendanceResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          string          `json:"date"`
	Porter        PorterRef       `json:"porter"`
	Carrier       CarrierRef      `json:"carrier"`
	LocationFrom  LocationRef     `json:"locationFrom"`
	LocationTo    LocationRef     `json:"locationTo"`
	Task          string          `json:"task"`
	CommuteCostID uuid.UUID       `json:"commuteCostId"`
	ComputedCost  decimal.Decimal `json:"computedCost"`
	CreatedBy     *UserRef        `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type AttendanceListResponse struct {
	Attendance  []AttendanceResponse `json:"attendance"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
	Total       int64                `json:"total"`
}

type CalendarDay struct {
	Count       int             `json:"count"`
	PorterCount int             `json:"porterCount"`
	TotalCost   decimal.Decimal `json:"totalCost"`
}
