package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommuteCost_Create_DuplicateRoute(t *testing.T) {
	f := newFixture(t)
	req := dto.CreateCommuteCostRequest{
		FromLocationID: f.wh1.ID.String(),
		ToLocationID:   f.wh2.ID.String(),
		CarrierID:      f.porter.ID.String(),
		Cost:           ptr(dec("20")),
	}
	created, err := f.costSvc.Create(f.ctx, f.admin.ID, req)
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, "WH01", created.FromLocation.Code)

	_, err = f.costSvc.Create(f.ctx, f.admin.ID, req)
	requireStatus(t, err, http.StatusConflict)

	// Reverse direction is a different route
	req.FromLocationID, req.ToLocationID = req.ToLocationID, req.FromLocationID
	_, err = f.costSvc.Create(f.ctx, f.admin.ID, req)
	require.NoError(t, err)
}

func TestCommuteCost_Create_InactiveIsStoredInactive(t *testing.T) {
	f := newFixture(t)
	created, err := f.costSvc.Create(f.ctx, f.admin.ID, dto.CreateCommuteCostRequest{
		FromLocationID: f.wh1.ID.String(),
		ToLocationID:   f.wh2.ID.String(),
		CarrierID:      f.porter.ID.String(),
		Cost:           ptr(dec("20")),
		Active:         ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, created.Active)

	stored, err := f.costs.FindByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	_, err = f.costSvc.Resolve(f.ctx, repository.Route{
		FromLocationID: f.wh1.ID, ToLocationID: f.wh2.ID, CarrierID: f.porter.ID,
	})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCommuteCost_Create_UnknownLocation(t *testing.T) {
	f := newFixture(t)
	_, err := f.costSvc.Create(f.ctx, f.admin.ID, dto.CreateCommuteCostRequest{
		FromLocationID: f.arjun.ID.String(),
		ToLocationID:   f.wh2.ID.String(),
		CarrierID:      f.porter.ID.String(),
		Cost:           ptr(dec("20")),
	})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCommuteCost_Update_ConflictWithOtherRoute(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	other := f.addCost(t, f.wh2, f.wh1, f.porter, 15, true)

	_, err := f.costSvc.Update(f.ctx, f.admin.ID, other.ID, dto.UpdateCommuteCostRequest{
		FromLocationID: ptr(f.wh1.ID.String()),
		ToLocationID:   ptr(f.wh2.ID.String()),
	})
	requireStatus(t, err, http.StatusConflict)

	// Re-sending its own route is not a conflict
	got, err := f.costSvc.Update(f.ctx, f.admin.ID, other.ID, dto.UpdateCommuteCostRequest{
		FromLocationID: ptr(f.wh2.ID.String()),
		Cost:           ptr(dec("16")),
		Active:         ptr(false),
	})
	require.NoError(t, err)
	assert.True(t, dec("16").Equal(got.Cost))
	assert.False(t, got.Active)
}

func TestCommuteCost_Find(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)

	found, err := f.costSvc.Find(f.ctx, dto.FindCommuteCostQuery{
		FromLocationID: f.wh1.ID.String(), ToLocationID: f.wh2.ID.String(), CarrierID: f.porter.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, dec("20").Equal(found.Cost))

	missing, err := f.costSvc.Find(f.ctx, dto.FindCommuteCostQuery{
		FromLocationID: f.wh2.ID.String(), ToLocationID: f.wh1.ID.String(), CarrierID: f.porter.ID.String(),
	})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCommuteCost_DeleteAndList(t *testing.T) {
	f := newFixture(t)
	c := f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	f.addCost(t, f.wh2, f.wh1, f.porter, 15, true)

	list, err := f.costSvc.List(f.ctx, dto.CommuteCostFilter{From: f.wh1.ID.String(), Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	require.NoError(t, f.costSvc.Delete(f.ctx, f.admin.ID, c.ID))
	requireStatus(t, f.costSvc.Delete(f.ctx, f.admin.ID, c.ID), http.StatusNotFound)

	list, err = f.costSvc.List(f.ctx, dto.CommuteCostFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}

// ── CSV import ────────────────────────────────────────────────────────────────

func TestParseCommuteCostCSV(t *testing.T) {
	csv := "\ufeffcarrierName,fromLocationCode,toLocationCode,cost,extra\n" +
		"porter,wh01,WH02,20,x\n" +
		",,,,\n" +
		"porter,WH02,WH01,15,\n"

	rows, err := service.ParseCommuteCostCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "wh01", rows[0].Values["fromLocationCode"])
	assert.Equal(t, 4, rows[1].Line)

	_, err = service.ParseCommuteCostCSV(strings.NewReader("from,to\nA,B\n"))
	requireStatus(t, err, http.StatusBadRequest)

	_, err = service.ParseCommuteCostCSV(strings.NewReader(""))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCommuteCost_Import(t *testing.T) {
	f := newFixture(t)
	existing := f.addCost(t, f.wh1, f.wh2, f.porter, 20, false)

	csv := "fromLocationCode,toLocationCode,carrierName,cost\n" +
		"wh01,WH02,Porter,25\n" + // upsert existing, reactivates
		"WH02,WH01,porter,15\n" + // new
		"WH09,WH01,porter,15\n" + // unknown location
		"WH02,WH01,porter,abc\n" + // bad cost
		"WH02,WH01,porter,-3\n" // negative
	rows, err := service.ParseCommuteCostCSV(strings.NewReader(csv))
	require.NoError(t, err)

	result, err := f.costSvc.Import(f.ctx, f.admin.ID, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.ErrorCount)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, "Location or carrier not found", result.Errors[0].Error)

	got, err := f.costSvc.Get(f.ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(got.Cost))
	assert.True(t, got.Active)

	list, err := f.costSvc.List(f.ctx, dto.CommuteCostFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
}

func TestCommuteCost_Import_CapsReportedErrors(t *testing.T) {
	f := newFixture(t)
	var b strings.Builder
	b.WriteString("fromLocationCode,toLocationCode,carrierName,cost\n")
	for i := 0; i < 15; i++ {
		b.WriteString("NOPE,WH01,porter,1\n")
	}
	rows, err := service.ParseCommuteCostCSV(strings.NewReader(b.String()))
	require.NoError(t, err)

	result, err := f.costSvc.Import(f.ctx, f.admin.ID, rows)
	require.NoError(t, err)
	assert.Equal(t, 15, result.ErrorCount)
	assert.Len(t, result.Errors, 10)
}

// overflowCosts rejects inserts above a ceiling the way numeric(12,2) does.
type overflowCosts struct {
	repository.CommuteCostRepository
	ceiling int64
}

func (r overflowCosts) Create(ctx context.Context, c *model.CommuteCost) error {
	if c.Cost.GreaterThan(decimal.NewFromInt(r.ceiling)) {
		return errors.New("ERROR: numeric field overflow (SQLSTATE 22003)")
	}
	return r.CommuteCostRepository.Create(ctx, c)
}

func TestCommuteCost_Import_DatabaseErrorSkipsRow(t *testing.T) {
	f := newFixture(t)
	svc := service.NewCommuteCostService(overflowCosts{f.costs, 1_000_000}, f.locations, f.carriers, f.views, f.activity)

	csv := "fromLocationCode,toLocationCode,carrierName,cost\n" +
		"WH01,WH02,porter,99999999999\n" +
		"WH02,WH01,porter,15\n"
	rows, err := service.ParseCommuteCostCSV(strings.NewReader(csv))
	require.NoError(t, err)

	result, err := svc.Import(f.ctx, f.admin.ID, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "failed to import row", result.Errors[0].Error)
	assert.NotContains(t, result.Errors[0].Error, "SQLSTATE")

	list, err := f.costSvc.List(f.ctx, dto.CommuteCostFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}
