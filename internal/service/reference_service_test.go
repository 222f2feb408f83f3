package service_test

import (
	"net/http"
	"testing"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorter_CreateUpdateDelete(t *testing.T) {
	f := newFixture(t)

	created, err := f.porterSvc.Create(f.ctx, f.admin.ID, dto.CreatePorterRequest{UID: "P010", Name: "Kiran", AccountNo: "ACC-10"})
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = f.porterSvc.Create(f.ctx, f.admin.ID, dto.CreatePorterRequest{UID: "P010", Name: "Other"})
	requireStatus(t, err, http.StatusConflict)

	// Renaming onto another porter's uid conflicts
	_, err = f.porterSvc.Update(f.ctx, f.admin.ID, created.ID, dto.UpdatePorterRequest{UID: ptr("P001")})
	requireStatus(t, err, http.StatusConflict)

	updated, err := f.porterSvc.Update(f.ctx, f.admin.ID, created.ID, dto.UpdatePorterRequest{FatherName: ptr("Ramesh")})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh", updated.FatherName)
	assert.Equal(t, "ACC-10", updated.AccountNo)

	require.NoError(t, f.porterSvc.Delete(f.ctx, f.admin.ID, created.ID))
	got, err := f.porterSvc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "delete is a soft delete")

	active, err := f.porterSvc.List(f.ctx, dto.PorterFilter{Active: "true", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 2, active.Total)
}

func TestPorter_DeleteKeepsAttendance(t *testing.T) {
	f := newFixture(t)
	f.addCost(t, f.wh1, f.wh2, f.porter, 20, true)
	entry := f.record(t, "2025-03-01", f.arjun, f.wh1, f.wh2)

	require.NoError(t, f.porterSvc.Delete(f.ctx, f.admin.ID, f.arjun.ID))

	got, err := f.attendSvc.Get(f.ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arjun", got.Porter.Name)
}

func TestLocation_CodeNormalized(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "WH05", service.NormalizeCode("  wh05 "))

	created, err := f.locationSvc.Create(f.ctx, f.admin.ID, dto.CreateLocationRequest{Code: " wh05", Name: "Gate"})
	require.NoError(t, err)
	assert.Equal(t, "WH05", created.Code)

	_, err = f.locationSvc.Create(f.ctx, f.admin.ID, dto.CreateLocationRequest{Code: "WH05", Name: "Dup"})
	requireStatus(t, err, http.StatusConflict)

	_, err = f.locationSvc.Get(f.ctx, f.arjun.ID)
	requireStatus(t, err, http.StatusNotFound)
}
