package service

import (
	"sort"

	"github.com/abhishek972986/porter-managment/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// porterGroup is one porter's share of a set of resolved entries.
type porterGroup struct {
	Porter dto.PorterRef
	Total  decimal.Decimal
	Trips  []dto.AttendanceResponse
}

// groupByPorter sums computed cost and collects trips per porter, ordered by
// porter name byte-wise (uppercase before lowercase) then uid. Trip order
// follows the input.
func groupByPorter(entries []dto.AttendanceResponse) []*porterGroup {
	byID := make(map[uuid.UUID]*porterGroup)
	var groups []*porterGroup
	for _, e := range entries {
		g, ok := byID[e.Porter.ID]
		if !ok {
			g = &porterGroup{Porter: e.Porter, Total: decimal.Zero}
			byID[e.Porter.ID] = g
			groups = append(groups, g)
		}
		g.Total = g.Total.Add(e.ComputedCost)
		g.Trips = append(g.Trips, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if a, b := groups[i].Porter.Name, groups[j].Porter.Name; a != b {
			return a < b
		}
		return groups[i].Porter.UID < groups[j].Porter.UID
	})
	return groups
}

// payrollRows builds the monthly payroll table and its summary. The summary
// is computed from the rows so the totals always agree.
func payrollRows(entries []dto.AttendanceResponse) ([]dto.PayrollRow, dto.PayrollSummary) {
	groups := groupByPorter(entries)
	rows := make([]dto.PayrollRow, 0, len(groups))
	summary := dto.PayrollSummary{TotalPayroll: decimal.Zero}
	for _, g := range groups {
		trips := make([]dto.PayrollTrip, 0, len(g.Trips))
		for _, t := range g.Trips {
			trips = append(trips, dto.PayrollTrip{
				Date:    t.Date,
				Cost:    t.ComputedCost,
				Carrier: t.Carrier.Name,
				From:    t.LocationFrom.Name,
				To:      t.LocationTo.Name,
			})
		}
		row := dto.PayrollRow{
			PorterID:    g.Porter.ID,
			PorterUID:   g.Porter.UID,
			PorterName:  g.Porter.Name,
			Designation: g.Porter.Designation,
			TotalSalary: g.Total,
			TotalTrips:  len(g.Trips),
			Trips:       trips,
		}
		rows = append(rows, row)
		summary.TotalPorters++
		summary.TotalPayroll = summary.TotalPayroll.Add(row.TotalSalary)
		summary.TotalTrips += row.TotalTrips
	}
	return rows, summary
}
