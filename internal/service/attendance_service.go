package service

import (
	"context"
	"strings"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AttendanceService interface {
	List(ctx context.Context, filter dto.AttendanceFilter) (*dto.AttendanceListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AttendanceResponse, error)
	// Create resolves the commute cost and snapshots it. Nothing is written
	// when the route has no active cost.
	Create(ctx context.Context, actor uuid.UUID, req dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	// Update re-resolves the cost only when carrier or locations are sent.
	Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
	Calendar(ctx context.Context, month string) (map[string]dto.CalendarDay, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	porters  repository.PorterRepository
	costs    CommuteCostService
	views    *ReadModels
	activity ActivityService
}

func NewAttendanceService(
	repo repository.AttendanceRepository,
	porters repository.PorterRepository,
	costs CommuteCostService,
	views *ReadModels,
	activity ActivityService,
) AttendanceService {
	return &attendanceService{repo: repo, porters: porters, costs: costs, views: views, activity: activity}
}

func invalidDate(field string, err error) error {
	return apierror.Validation([]apierror.FieldError{{Field: field, Message: err.Error()}})
}

// dateWindow turns the list filter into [start, end). date wins over month,
// month wins over startDate/endDate.
func dateWindow(f dto.AttendanceFilter) (time.Time, time.Time, error) {
	switch {
	case f.Date != "":
		d, err := dates.ParseDay(f.Date)
		if err != nil {
			return time.Time{}, time.Time{}, invalidDate("date", err)
		}
		start, end := dates.DayRange(d)
		return start, end, nil
	case f.Month != "":
		m, err := dates.ParseMonth(f.Month)
		if err != nil {
			return time.Time{}, time.Time{}, invalidDate("month", err)
		}
		start, end := dates.MonthRange(m)
		return start, end, nil
	case f.StartDate != "" || f.EndDate != "":
		if f.StartDate == "" || f.EndDate == "" {
			return time.Time{}, time.Time{}, apierror.BadRequest("startDate and endDate must be given together")
		}
		s, err := dates.ParseDay(f.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, invalidDate("startDate", err)
		}
		e, err := dates.ParseDay(f.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, invalidDate("endDate", err)
		}
		if e.Before(s) {
			return time.Time{}, time.Time{}, apierror.BadRequest("endDate is before startDate")
		}
		start, end := dates.InclusiveRange(s, e)
		return start, end, nil
	}
	return time.Time{}, time.Time{}, nil
}

func (s *attendanceService) List(ctx context.Context, filter dto.AttendanceFilter) (*dto.AttendanceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	start, end, err := dateWindow(filter)
	if err != nil {
		return nil, err
	}
	q := repository.AttendanceQuery{
		Start:  start,
		End:    end,
		Offset: (filter.Page - 1) * filter.Limit,
		Limit:  filter.Limit,
	}
	if filter.PorterID != "" {
		id, err := parseID("porterId", filter.PorterID)
		if err != nil {
			return nil, err
		}
		q.PorterID = &id
	}

	list, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views, err := s.views.Attendance(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceListResponse{
		Attendance:  views,
		TotalPages:  dto.TotalPages(total, filter.Limit),
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

func (s *attendanceService) Get(ctx context.Context, id uuid.UUID) (*dto.AttendanceResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "attendance entry not found")
	}
	return s.views.AttendanceOne(ctx, *e)
}

func (s *attendanceService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	day, err := dates.ParseDay(req.Date)
	if err != nil {
		return nil, invalidDate("date", err)
	}
	porterID, err := parseID("porterId", req.PorterID)
	if err != nil {
		return nil, err
	}
	route, err := routeFromStrings(req.LocationFromID, req.LocationToID, req.CarrierID)
	if err != nil {
		return nil, err
	}
	if _, err := s.porters.FindByID(ctx, porterID); err != nil {
		return nil, notFound(err, "porter not found")
	}

	cost, err := s.costs.Resolve(ctx, route)
	if err != nil {
		return nil, err
	}

	e := &model.AttendanceEntry{
		Date:           day,
		CarrierID:      route.CarrierID,
		PorterID:       porterID,
		LocationFromID: route.FromLocationID,
		LocationToID:   route.ToLocationID,
		Task:           strings.TrimSpace(req.Task),
		CommuteCostID:  cost.ID,
		ComputedCost:   cost.Cost,
		CreatedByID:    actor,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, model.ActivityAttendanceCreated, "Attendance recorded for "+dates.FormatDay(day),
		map[string]any{"attendanceId": e.ID.String(), "porterId": porterID.String(), "computedCost": e.ComputedCost.String()})
	return s.views.AttendanceOne(ctx, *e)
}

func (s *attendanceService) Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "attendance entry not found")
	}

	if req.Date != nil {
		day, err := dates.ParseDay(*req.Date)
		if err != nil {
			return nil, invalidDate("date", err)
		}
		e.Date = day
	}
	if req.PorterID != nil {
		porterID, err := parseID("porterId", *req.PorterID)
		if err != nil {
			return nil, err
		}
		if porterID != e.PorterID {
			if _, err := s.porters.FindByID(ctx, porterID); err != nil {
				return nil, notFound(err, "porter not found")
			}
			e.PorterID = porterID
		}
	}
	if req.Task != nil {
		e.Task = strings.TrimSpace(*req.Task)
	}

	if req.RouteChanged() {
		// Fields missing from the payload keep the entry's current values.
		route := repository.Route{FromLocationID: e.LocationFromID, ToLocationID: e.LocationToID, CarrierID: e.CarrierID}
		if req.CarrierID != nil {
			if route.CarrierID, err = parseID("carrierId", *req.CarrierID); err != nil {
				return nil, err
			}
		}
		if req.LocationFromID != nil {
			if route.FromLocationID, err = parseID("locationFromId", *req.LocationFromID); err != nil {
				return nil, err
			}
		}
		if req.LocationToID != nil {
			if route.ToLocationID, err = parseID("locationToId", *req.LocationToID); err != nil {
				return nil, err
			}
		}
		cost, err := s.costs.Resolve(ctx, route)
		if err != nil {
			return nil, err
		}
		e.CarrierID = route.CarrierID
		e.LocationFromID = route.FromLocationID
		e.LocationToID = route.ToLocationID
		e.CommuteCostID = cost.ID
		e.ComputedCost = cost.Cost
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityAttendanceUpdated, "Attendance updated for "+dates.FormatDay(e.Date),
		map[string]any{"attendanceId": e.ID.String(), "computedCost": e.ComputedCost.String()})
	return s.views.AttendanceOne(ctx, *e)
}

func (s *attendanceService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "attendance entry not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "attendance entry not found")
	}
	s.activity.Record(ctx, actor, model.ActivityAttendanceDeleted, "Attendance deleted for "+dates.FormatDay(e.Date),
		map[string]any{"attendanceId": id.String(), "porterId": e.PorterID.String()})
	return nil
}

func (s *attendanceService) Calendar(ctx context.Context, month string) (map[string]dto.CalendarDay, error) {
	m, err := dates.ParseMonth(month)
	if err != nil {
		return nil, invalidDate("month", err)
	}
	start, end := dates.MonthRange(m)
	entries, err := s.repo.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return calendarDays(entries), nil
}

// calendarDays groups entries by calendar day.
func calendarDays(entries []model.AttendanceEntry) map[string]dto.CalendarDay {
	out := make(map[string]dto.CalendarDay)
	porters := make(map[string]map[uuid.UUID]bool)
	for _, e := range entries {
		key := dates.FormatDay(e.Date)
		day, ok := out[key]
		if !ok {
			day.TotalCost = decimal.Zero
			porters[key] = make(map[uuid.UUID]bool)
		}
		day.Count++
		day.TotalCost = day.TotalCost.Add(e.ComputedCost)
		porters[key][e.PorterID] = true
		day.PorterCount = len(porters[key])
		out[key] = day
	}
	return out
}
