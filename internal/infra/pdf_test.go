package infra_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/infra"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePayslipPDF(t *testing.T) {
	paidAt := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	view := &dto.PorterPayrollResponse{
		Porter:      dto.PorterRef{ID: uuid.New(), UID: "P001", Name: "Arjun", Designation: "Porter"},
		Month:       "2025-03",
		TotalSalary: decimal.NewFromInt(40),
		TotalTrips:  2,
		Trips: []dto.AttendanceResponse{
			{
				Date:         "2025-03-01",
				Carrier:      dto.CarrierRef{Name: "porter"},
				LocationFrom: dto.LocationRef{Code: "WH01"},
				LocationTo:   dto.LocationRef{Code: "WH02"},
				ComputedCost: decimal.NewFromInt(20),
			},
			{
				Date:         "2025-03-02",
				Carrier:      dto.CarrierRef{Name: "porter"},
				LocationFrom: dto.LocationRef{Code: "WH02"},
				LocationTo:   dto.LocationRef{Code: "WH01"},
				ComputedCost: decimal.NewFromInt(20),
			},
		},
		Payment: dto.PaymentStatus{IsPaid: true, Amount: decimal.NewFromInt(40), PaidAt: &paidAt, Notes: "cash"},
	}

	data, err := infra.GeneratePayslipPDF(view, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output should be a PDF document")
}

func TestGeneratePayslipPDF_NoTrips(t *testing.T) {
	view := &dto.PorterPayrollResponse{
		Porter:      dto.PorterRef{UID: "P009", Name: "Empty"},
		Month:       "2025-01",
		TotalSalary: decimal.Zero,
		Payment:     dto.PaymentStatus{Amount: decimal.Zero},
	}
	data, err := infra.GeneratePayslipPDF(view, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
