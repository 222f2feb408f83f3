package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Dashboard ─────────────────────────────────────────────────────────────────

type DashboardMonth struct {
	Month         string          `json:"month"`
	TotalEntries  int             `json:"totalEntries"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	ActivePorters int             `json:"activePorters"`
}

type DashboardResponse struct {
	CurrentMonth  DashboardMonth       `json:"currentMonth"`
	TotalPorters  int64                `json:"totalPorters"`
	RecentEntries []AttendanceResponse `json:"recentEntries"`
}

// ── Monthly report ────────────────────────────────────────────────────────────

type ReportSummary struct {
	Month        string          `json:"month"`
	MonthName    string          `json:"monthName"`
	TotalPorters int             `json:"totalPorters"`
	TotalPayroll decimal.Decimal `json:"totalPayroll"`
	TotalTrips   int             `json:"totalTrips"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

type ReportTrip struct {
	Date    string          `json:"date"`
	Carrier string          `json:"carrier"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Task    string          `json:"task"`
	Cost    decimal.Decimal `json:"cost"`
}

type ReportPorter struct {
	PorterID    uuid.UUID       `json:"porterId"`
	PorterUID   string          `json:"porterUid"`
	PorterName  string          `json:"porterName"`
	Designation string          `json:"designation"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
	TotalTrips  int             `json:"totalTrips"`
	Trips       []ReportTrip    `json:"trips"`
}

type CarrierStat struct {
	CarrierName string          `json:"carrierName"`
	Count       int             `json:"count"`
	TotalCost   decimal.Decimal `json:"totalCost"`
}

type LocationStat struct {
	LocationCode string `json:"locationCode"`
	LocationName string `json:"locationName"`
	Count        int    `json:"count"`
}

type ReportStatistics struct {
	Carriers         []CarrierStat  `json:"carriers"`
	TopFromLocations []LocationStat `json:"topFromLocations"`
	TopToLocations   []LocationStat `json:"topToLocations"`
}

type MonthlyReportResponse struct {
	Summary    ReportSummary    `json:"summary"`
	Porters    []ReportPorter   `json:"porters"`
	Statistics ReportStatistics `json:"statistics"`
}

// ── Nominal roll ──────────────────────────────────────────────────────────────

type NominalRollRow struct {
	PorterID    uuid.UUID       `json:"porterId"`
	PorterUID   string          `json:"porterUid"`
	AccountNo   string          `json:"accountNo"`
	PorterName  string          `json:"porterName"`
	FatherName  string          `json:"fatherName"`
	DaysWorked  int             `json:"daysWorked"`
	PerDayRate  decimal.Decimal `json:"perDayRate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Remarks     string          `json:"remarks"`
}
