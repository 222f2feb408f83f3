package service_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReport_NominalRoll_PerDayRate(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 50, true)
	f.record(t, "2025-03-01", f.arjun, f.wh1, f.wh2)
	f.record(t, "2025-03-02", f.arjun, f.wh1, f.wh2)
	f.record(t, "2025-03-03", f.arjun, f.wh1, f.wh2)

	rows, err := f.reportSvc.NominalRoll(f.ctx, "2025-03")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].DaysWorked)
	assert.True(t, dec("150").Equal(rows[0].TotalAmount))
	assert.True(t, dec("50").Equal(rows[0].PerDayRate))
	assert.Equal(t, "ACC-P001", rows[0].AccountNo)
	assert.Equal(t, "Father of Arjun", rows[0].FatherName)
}

func TestReport_NominalRoll_RoundsRate(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	f.addCost(t, f.wh2, f.wh1, f.porter, 15, true)
	f.record(t, "2025-03-01", f.bhola, f.wh1, f.wh2)
	f.record(t, "2025-03-02", f.bhola, f.wh2, f.wh1)
	f.record(t, "2025-03-03", f.arjun, f.wh2, f.wh1)

	rows, err := f.reportSvc.NominalRoll(f.ctx, "2025-03")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arjun", rows[0].PorterName)
	// 35 / 2 = 17.5 rounds half away from zero
	assert.True(t, dec("18").Equal(rows[1].PerDayRate), "got %s", rows[1].PerDayRate)
}

func TestReport_NominalRollXLSX(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 50, true)
	f.record(t, "2025-03-01", f.arjun, f.wh1, f.wh2)

	data, name, err := f.reportSvc.NominalRollXLSX(f.ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "Nominal_Roll_2025-03.xlsx", name)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()
	v, err := book.GetCellValue("Nominal Roll", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Arjun", v)

	_, _, err = f.reportSvc.NominalRollXLSX(f.ctx, "2025-13")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestReport_Generate(t *testing.T) {
	f := newFixture(t)
	donkey := &model.Carrier{Name: model.CarrierSmallDonkey, CapacityKg: 40, Active: true}
	require.NoError(t, f.carriers.Create(f.ctx, donkey))
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	f.addCost(t, f.wh1, f.wh2, donkey, 40, true)

	f.record(t, "2025-03-01", f.arjun, f.wh1, f.wh2)
	f.record(t, "2025-03-02", f.bhola, f.wh1, f.wh2)
	_, err := f.attendSvc.Create(f.ctx, f.admin.ID, dtoCreate(f, "2025-03-03", f.arjun, donkey))
	require.NoError(t, err)

	report, err := f.reportSvc.Generate(f.ctx, f.admin.ID, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", report.Summary.MonthName)
	assert.Equal(t, 2, report.Summary.TotalPorters)
	assert.Equal(t, 3, report.Summary.TotalTrips)
	assert.True(t, dec("80").Equal(report.Summary.TotalPayroll))

	require.Len(t, report.Porters, 2)
	assert.Equal(t, "Arjun", report.Porters[0].PorterName)
	assert.Equal(t, "Load transfer", report.Porters[0].Trips[0].Task)

	require.Len(t, report.Statistics.Carriers, 2)
	assert.Equal(t, "porter", report.Statistics.Carriers[0].CarrierName)
	assert.Equal(t, 2, report.Statistics.Carriers[0].Count)
	assert.Equal(t, "small-donkey", report.Statistics.Carriers[1].CarrierName)

	require.Len(t, report.Statistics.TopFromLocations, 1)
	assert.Equal(t, "WH01", report.Statistics.TopFromLocations[0].LocationCode)
	assert.Equal(t, 3, report.Statistics.TopFromLocations[0].Count)

	recent, err := f.activity.Recent(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ActivityReportGenerated, recent[0].Type)
}

func TestReport_Dashboard(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	thisMonth := dates.FormatMonth(dates.CurrentMonth(time.Now()))
	f.record(t, thisMonth+"-01", f.arjun, f.wh1, f.wh2)
	f.record(t, thisMonth+"-01", f.arjun, f.wh1, f.wh2)
	f.record(t, "2020-01-15", f.bhola, f.wh1, f.wh2)

	dash, err := f.reportSvc.Dashboard(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, thisMonth, dash.CurrentMonth.Month)
	assert.Equal(t, 2, dash.CurrentMonth.TotalEntries)
	assert.Equal(t, 1, dash.CurrentMonth.ActivePorters)
	assert.True(t, dec("40").Equal(dash.CurrentMonth.TotalCost))
	assert.EqualValues(t, 2, dash.TotalPorters)
	assert.Len(t, dash.RecentEntries, 3)
}
