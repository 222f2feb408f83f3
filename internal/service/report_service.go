package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	dashboardRecent  = 10
	topLocationLimit = 10
)

type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Generate(ctx context.Context, actor uuid.UUID, month string) (*dto.MonthlyReportResponse, error)
	NominalRoll(ctx context.Context, month string) ([]dto.NominalRollRow, error)
	NominalRollXLSX(ctx context.Context, month string) ([]byte, string, error)
}

type reportService struct {
	attendance repository.AttendanceRepository
	views      *ReadModels
	activity   ActivityService
	now        func() time.Time
}

func NewReportService(attendance repository.AttendanceRepository, views *ReadModels, activity ActivityService) ReportService {
	return &reportService{attendance: attendance, views: views, activity: activity, now: time.Now}
}

func (s *reportService) monthEntries(ctx context.Context, month time.Time) ([]dto.AttendanceResponse, error) {
	start, end := dates.MonthRange(month)
	list, err := s.attendance.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return s.views.Attendance(ctx, list)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	month := dates.CurrentMonth(s.now())
	start, end := dates.MonthRange(month)
	list, err := s.attendance.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	current := dto.DashboardMonth{Month: dates.FormatMonth(month), TotalCost: decimal.Zero}
	porters := make(map[uuid.UUID]bool)
	for _, e := range list {
		current.TotalEntries++
		current.TotalCost = current.TotalCost.Add(e.ComputedCost)
		porters[e.PorterID] = true
	}
	current.ActivePorters = len(porters)

	total, err := s.attendance.CountDistinctPorters(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.attendance.Recent(ctx, dashboardRecent)
	if err != nil {
		return nil, err
	}
	recentViews, err := s.views.Attendance(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		CurrentMonth:  current,
		TotalPorters:  total,
		RecentEntries: recentViews,
	}, nil
}

// ── Monthly report ────────────────────────────────────────────────────────────

func (s *reportService) Generate(ctx context.Context, actor uuid.UUID, month string) (*dto.MonthlyReportResponse, error) {
	m, err := parseMonthField("month", month)
	if err != nil {
		return nil, err
	}
	entries, err := s.monthEntries(ctx, m)
	if err != nil {
		return nil, err
	}

	groups := groupByPorter(entries)
	summary := dto.ReportSummary{
		Month:        dates.FormatMonth(m),
		MonthName:    m.Format("January 2006"),
		TotalPayroll: decimal.Zero,
		GeneratedAt:  s.now().UTC(),
	}
	porters := make([]dto.ReportPorter, 0, len(groups))
	for _, g := range groups {
		trips := make([]dto.ReportTrip, 0, len(g.Trips))
		for _, t := range g.Trips {
			trips = append(trips, dto.ReportTrip{
				Date:    t.Date,
				Carrier: t.Carrier.Name,
				From:    t.LocationFrom.Name,
				To:      t.LocationTo.Name,
				Task:    t.Task,
				Cost:    t.ComputedCost,
			})
		}
		porters = append(porters, dto.ReportPorter{
			PorterID:    g.Porter.ID,
			PorterUID:   g.Porter.UID,
			PorterName:  g.Porter.Name,
			Designation: g.Porter.Designation,
			TotalSalary: g.Total,
			TotalTrips:  len(g.Trips),
			Trips:       trips,
		})
		summary.TotalPorters++
		summary.TotalPayroll = summary.TotalPayroll.Add(g.Total)
		summary.TotalTrips += len(g.Trips)
	}

	report := &dto.MonthlyReportResponse{
		Summary:    summary,
		Porters:    porters,
		Statistics: reportStatistics(entries),
	}

	s.activity.Record(ctx, actor, model.ActivityReportGenerated,
		fmt.Sprintf("Monthly report generated for %s", summary.Month),
		map[string]any{"month": summary.Month, "totalPorters": summary.TotalPorters})

	return report, nil
}

func reportStatistics(entries []dto.AttendanceResponse) dto.ReportStatistics {
	carriers := make(map[string]*dto.CarrierStat)
	from := make(map[uuid.UUID]*dto.LocationStat)
	to := make(map[uuid.UUID]*dto.LocationStat)
	for _, e := range entries {
		cs, ok := carriers[e.Carrier.Name]
		if !ok {
			cs = &dto.CarrierStat{CarrierName: e.Carrier.Name, TotalCost: decimal.Zero}
			carriers[e.Carrier.Name] = cs
		}
		cs.Count++
		cs.TotalCost = cs.TotalCost.Add(e.ComputedCost)
		countLocation(from, e.LocationFrom)
		countLocation(to, e.LocationTo)
	}

	stats := dto.ReportStatistics{Carriers: make([]dto.CarrierStat, 0, len(carriers))}
	for _, cs := range carriers {
		stats.Carriers = append(stats.Carriers, *cs)
	}
	sort.Slice(stats.Carriers, func(i, j int) bool {
		return stats.Carriers[i].CarrierName < stats.Carriers[j].CarrierName
	})
	stats.TopFromLocations = topLocations(from, topLocationLimit)
	stats.TopToLocations = topLocations(to, topLocationLimit)
	return stats
}

func countLocation(m map[uuid.UUID]*dto.LocationStat, ref dto.LocationRef) {
	ls, ok := m[ref.ID]
	if !ok {
		ls = &dto.LocationStat{LocationCode: ref.Code, LocationName: ref.Name}
		m[ref.ID] = ls
	}
	ls.Count++
}

// topLocations orders by count descending, ties broken by code.
func topLocations(m map[uuid.UUID]*dto.LocationStat, limit int) []dto.LocationStat {
	out := make([]dto.LocationStat, 0, len(m))
	for _, ls := range m {
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LocationCode < out[j].LocationCode
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ── Nominal roll ──────────────────────────────────────────────────────────────

func (s *reportService) NominalRoll(ctx context.Context, month string) ([]dto.NominalRollRow, error) {
	m, err := parseMonthField("month", month)
	if err != nil {
		return nil, err
	}
	start, end := dates.MonthRange(m)
	list, err := s.attendance.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.PorterID)
	}
	porters, err := s.views.Porters(ctx, ids)
	if err != nil {
		return nil, err
	}
	return nominalRows(list, porters), nil
}

// nominalRows aggregates one row per porter. A porter whose record is gone
// keeps its id and an empty name.
func nominalRows(list []model.AttendanceEntry, porters map[uuid.UUID]model.Porter) []dto.NominalRollRow {
	byID := make(map[uuid.UUID]*dto.NominalRollRow)
	var rows []*dto.NominalRollRow
	for _, e := range list {
		row, ok := byID[e.PorterID]
		if !ok {
			p := porters[e.PorterID]
			row = &dto.NominalRollRow{
				PorterID:    e.PorterID,
				PorterUID:   p.UID,
				AccountNo:   p.AccountNo,
				PorterName:  p.Name,
				FatherName:  p.FatherName,
				TotalAmount: decimal.Zero,
			}
			byID[e.PorterID] = row
			rows = append(rows, row)
		}
		row.DaysWorked++
		row.TotalAmount = row.TotalAmount.Add(e.ComputedCost)
	}

	out := make([]dto.NominalRollRow, 0, len(rows))
	for _, row := range rows {
		row.PerDayRate = decimal.Zero
		if row.DaysWorked > 0 {
			row.PerDayRate = row.TotalAmount.Div(decimal.NewFromInt(int64(row.DaysWorked))).Round(0)
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].PorterName) < strings.ToLower(out[j].PorterName)
	})
	return out
}

func (s *reportService) NominalRollXLSX(ctx context.Context, month string) ([]byte, string, error) {
	rows, err := s.NominalRoll(ctx, month)
	if err != nil {
		return nil, "", err
	}
	m, _ := dates.ParseMonth(month)
	label := dates.FormatMonth(m)
	data, err := infra.NominalRollXLSX(label, rows)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("month", label).Int("porters", len(rows)).Msg("nominal roll exported")
	return data, fmt.Sprintf("Nominal_Roll_%s.xlsx", label), nil
}
