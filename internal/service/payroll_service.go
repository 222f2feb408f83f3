package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayrollService interface {
	Monthly(ctx context.Context, month string) (*dto.MonthlyPayrollResponse, error)
	ForPorter(ctx context.Context, porterID uuid.UUID, month string) (*dto.PorterPayrollResponse, error)
	Summary(ctx context.Context, startMonth, endMonth string) (*dto.PayrollSummaryResponse, error)
	UpdatePayment(ctx context.Context, actor, porterID uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	Payslip(ctx context.Context, porterID uuid.UUID, month string) ([]byte, string, error)
}

type payrollService struct {
	attendance repository.AttendanceRepository
	porters    repository.PorterRepository
	payments   repository.PaymentRepository
	views      *ReadModels
	activity   ActivityService
	now        func() time.Time
}

func NewPayrollService(
	attendance repository.AttendanceRepository,
	porters repository.PorterRepository,
	payments repository.PaymentRepository,
	views *ReadModels,
	activity ActivityService,
) PayrollService {
	return &payrollService{
		attendance: attendance,
		porters:    porters,
		payments:   payments,
		views:      views,
		activity:   activity,
		now:        time.Now,
	}
}

func parseMonthField(field, raw string) (time.Time, error) {
	m, err := dates.ParseMonth(raw)
	if err != nil {
		return time.Time{}, invalidDate(field, err)
	}
	return m, nil
}

// monthEntries returns the resolved entries of one month, optionally for a
// single porter, ordered by date.
func (s *payrollService) monthEntries(ctx context.Context, month time.Time, porterID *uuid.UUID) ([]dto.AttendanceResponse, error) {
	start, end := dates.MonthRange(month)
	list, err := s.attendance.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end, PorterID: porterID})
	if err != nil {
		return nil, err
	}
	return s.views.Attendance(ctx, list)
}

func (s *payrollService) Monthly(ctx context.Context, month string) (*dto.MonthlyPayrollResponse, error) {
	m, err := parseMonthField("month", month)
	if err != nil {
		return nil, err
	}
	entries, err := s.monthEntries(ctx, m, nil)
	if err != nil {
		return nil, err
	}
	rows, summary := payrollRows(entries)
	return &dto.MonthlyPayrollResponse{Month: dates.FormatMonth(m), Payroll: rows, Summary: summary}, nil
}

func (s *payrollService) ForPorter(ctx context.Context, porterID uuid.UUID, month string) (*dto.PorterPayrollResponse, error) {
	m, err := parseMonthField("month", month)
	if err != nil {
		return nil, err
	}
	porter, err := s.porters.FindByID(ctx, porterID)
	if err != nil {
		return nil, notFound(err, "porter not found")
	}
	trips, err := s.monthEntries(ctx, m, &porterID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, t := range trips {
		total = total.Add(t.ComputedCost)
	}

	payment := dto.PaymentStatus{Amount: decimal.Zero}
	p, err := s.payments.Find(ctx, porterID, m.Year(), int(m.Month()))
	switch {
	case err == nil:
		payment = mapPayment(*p)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return &dto.PorterPayrollResponse{
		Porter:      dto.PorterRef{ID: porter.ID, UID: porter.UID, Name: porter.Name, Designation: porter.Designation},
		Month:       dates.FormatMonth(m),
		TotalSalary: total,
		TotalTrips:  len(trips),
		Trips:       trips,
		Payment:     payment,
	}, nil
}

func (s *payrollService) Summary(ctx context.Context, startMonth, endMonth string) (*dto.PayrollSummaryResponse, error) {
	from, err := parseMonthField("startMonth", startMonth)
	if err != nil {
		return nil, err
	}
	to, err := parseMonthField("endMonth", endMonth)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, apierror.BadRequest("endMonth is before startMonth")
	}

	start, _ := dates.MonthRange(from)
	_, end := dates.MonthRange(to)
	list, err := s.attendance.ListInRange(ctx, repository.AttendanceQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return &dto.PayrollSummaryResponse{Summary: monthSummaries(list)}, nil
}

// monthSummaries groups entries by "YYYY-MM", ascending.
func monthSummaries(list []model.AttendanceEntry) []dto.MonthSummary {
	byMonth := make(map[string]*dto.MonthSummary)
	porters := make(map[string]map[uuid.UUID]bool)
	for _, e := range list {
		key := dates.FormatMonth(e.Date)
		ms, ok := byMonth[key]
		if !ok {
			ms = &dto.MonthSummary{Month: key, TotalCost: decimal.Zero}
			byMonth[key] = ms
			porters[key] = make(map[uuid.UUID]bool)
		}
		ms.TotalCost = ms.TotalCost.Add(e.ComputedCost)
		ms.TotalTrips++
		porters[key][e.PorterID] = true
	}
	out := make([]dto.MonthSummary, 0, len(byMonth))
	for key, ms := range byMonth {
		ms.UniquePorters = len(porters[key])
		out = append(out, *ms)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (s *payrollService) UpdatePayment(ctx context.Context, actor, porterID uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	m, err := parseMonthField("month", req.Month)
	if err != nil {
		return nil, err
	}
	if (req.Amount == nil) == (req.Increment == nil) {
		return nil, apierror.Validation([]apierror.FieldError{
			{Field: "amount", Message: "exactly one of amount or increment is required"},
		})
	}
	change := repository.PaymentChange{
		PorterID:    porterID,
		Year:        m.Year(),
		Month:       int(m.Month()),
		Notes:       req.Notes,
		UpdatedByID: actor,
		At:          s.now(),
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, apierror.Validation([]apierror.FieldError{{Field: "amount", Message: "amount must be zero or greater"}})
		}
		change.Amount = *req.Amount
	} else {
		if !req.Increment.IsPositive() {
			return nil, apierror.Validation([]apierror.FieldError{{Field: "increment", Message: "increment must be greater than zero"}})
		}
		change.Amount = *req.Increment
		change.Increment = true
	}

	porter, err := s.porters.FindByID(ctx, porterID)
	if err != nil {
		return nil, notFound(err, "porter not found")
	}

	p, err := s.payments.Upsert(ctx, change)
	if err != nil {
		return nil, err
	}

	activityType := model.ActivityPayrollUnpaid
	if p.IsPaid {
		activityType = model.ActivityPayrollPaid
	}
	s.activity.Record(ctx, actor, activityType,
		fmt.Sprintf("Payment for %s (%s) set to %s", porter.Name, dates.FormatMonth(m), p.Amount.String()),
		map[string]any{"porterId": porterID.String(), "month": dates.FormatMonth(m), "amount": p.Amount.String()})

	return &dto.PaymentResponse{Payment: mapPayment(*p)}, nil
}

func (s *payrollService) Payslip(ctx context.Context, porterID uuid.UUID, month string) ([]byte, string, error) {
	view, err := s.ForPorter(ctx, porterID, month)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.GeneratePayslipPDF(view, s.now())
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("Payslip_%s_%s.pdf", view.Porter.UID, view.Month), nil
}

func mapPayment(p model.Payment) dto.PaymentStatus {
	return dto.PaymentStatus{
		IsPaid: p.IsPaid,
		Amount: p.Amount,
		PaidAt: p.PaidAt,
		Notes:  p.Notes,
	}
}
