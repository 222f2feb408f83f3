package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Monthly payroll ───────────────────────────────────────────────────────────

type PayrollTrip struct {
	Date    string          `json:"date"`
	Cost    decimal.Decimal `json:"cost"`
	Carrier string          `json:"carrier"`
	From    string          `json:"from"`
	To      string          `json:"to"`
}

type PayrollRow struct {
	PorterID    uuid.UUID       `json:"porterId"`
	PorterUID   string          `json:"porterUid"`
	PorterName  string          `json:"porterName"`
	Designation string          `json:"designation"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
	TotalTrips  int             `json:"totalTrips"`
	Trips       []PayrollTrip   `json:"trips"`
}

type PayrollSummary struct {
	TotalPorters int             `json:"totalPorters"`
	TotalPayroll decimal.Decimal `json:"totalPayroll"`
	TotalTrips   int             `json:"totalTrips"`
}

type MonthlyPayrollResponse struct {
	Month   string         `json:"month"`
	Payroll []PayrollRow   `json:"payroll"`
	Summary PayrollSummary `json:"summary"`
}

// ── Per-porter payroll ────────────────────────────────────────────────────────

type PaymentStatus struct {
	IsPaid bool            `json:"isPaid"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt *time.Time      `json:"paidAt"`
	Notes  string          `json:"notes"`
}

type PorterPayrollResponse struct {
	Porter      PorterRef            `json:"porter"`
	Month       string               `json:"month"`
	TotalSalary decimal.Decimal      `json:"totalSalary"`
	TotalTrips  int                  `json:"totalTrips"`
	Trips       []AttendanceResponse `json:"trips"`
	Payment     PaymentStatus        `json:"payment"`
}

// UpdatePaymentRequest sets the cumulative amount or adds an increment.
// Exactly one of Amount and Increment must be present.
type UpdatePaymentRequest struct {
	Month     string           `json:"month"     validate:"required"`
	Amount    *decimal.Decimal `json:"amount"    validate:"omitempty,min=0"`
	Increment *decimal.Decimal `json:"increment" validate:"omitempty,gt=0"`
	Notes     *string          `json:"notes"     validate:"omitempty,max=1000"`
}

type PaymentResponse struct {
	Payment PaymentStatus `json:"payment"`
}

// ── Multi-month summary ───────────────────────────────────────────────────────

type SummaryQuery struct {
	StartMonth string `form:"startMonth" validate:"required"`
	EndMonth   string `form:"endMonth"   validate:"required"`
}

type MonthSummary struct {
	Month         string          `json:"month"` // YYYY-MM
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalTrips    int             `json:"totalTrips"`
	UniquePorters int             `json:"uniquePorters"`
}

type PayrollSummaryResponse struct {
	Summary []MonthSummary `json:"summary"`
}
