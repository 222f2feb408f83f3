package service_test

import (
	"context"
	"testing"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ── Fixture ───────────────────────────────────────────────────────────────────
// Real repositories over in-memory SQLite, seeded with one admin, two
// porters, two locations and the porter carrier.

type fixture struct {
	db  *gorm.DB
	ctx context.Context

	users      repository.UserRepository
	porters    repository.PorterRepository
	locations  repository.LocationRepository
	carriers   repository.CarrierRepository
	costs      repository.CommuteCostRepository
	attendance repository.AttendanceRepository
	payments   repository.PaymentRepository
	activities repository.ActivityRepository

	views       *service.ReadModels
	activity    service.ActivityService
	costSvc     service.CommuteCostService
	attendSvc   service.AttendanceService
	payrollSvc  service.PayrollService
	reportSvc   service.ReportService
	porterSvc   service.PorterService
	locationSvc service.LocationService

	admin        *model.User
	arjun, bhola *model.Porter
	wh1, wh2     *model.Location
	porter       *model.Carrier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	f := &fixture{
		db:         db,
		ctx:        context.Background(),
		users:      repository.NewUserRepository(db),
		porters:    repository.NewPorterRepository(db),
		locations:  repository.NewLocationRepository(db),
		carriers:   repository.NewCarrierRepository(db),
		costs:      repository.NewCommuteCostRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		payments:   repository.NewPaymentRepository(db),
		activities: repository.NewActivityRepository(db),
	}
	f.views = service.NewReadModels(f.porters, f.locations, f.carriers, f.users)
	f.activity = service.NewActivityService(f.activities, f.users, nil)
	f.costSvc = service.NewCommuteCostService(f.costs, f.locations, f.carriers, f.views, f.activity)
	f.attendSvc = service.NewAttendanceService(f.attendance, f.porters, f.costSvc, f.views, f.activity)
	f.payrollSvc = service.NewPayrollService(f.attendance, f.porters, f.payments, f.views, f.activity)
	f.reportSvc = service.NewReportService(f.attendance, f.views, f.activity)
	f.porterSvc = service.NewPorterService(f.porters, f.activity)
	f.locationSvc = service.NewLocationService(f.locations, f.activity)

	f.admin = &model.User{Name: "Admin", Email: "admin@porter.com", PasswordHash: "x", Role: model.RoleAdmin, Active: true}
	require.NoError(t, f.users.Create(f.ctx, f.admin))

	f.arjun = f.addPorter(t, "P001", "Arjun")
	f.bhola = f.addPorter(t, "P002", "Bhola")
	f.wh1 = f.addLocation(t, "WH01", "Main Warehouse")
	f.wh2 = f.addLocation(t, "WH02", "North Depot")
	f.porter = &model.Carrier{Name: model.CarrierPorter, CapacityKg: 20, Active: true}
	require.NoError(t, f.carriers.Create(f.ctx, f.porter))
	return f
}

func (f *fixture) addPorter(t *testing.T, uid, name string) *model.Porter {
	t.Helper()
	p := &model.Porter{UID: uid, Name: name, Designation: "Porter", AccountNo: "ACC-" + uid, FatherName: "Father of " + name, Active: true}
	require.NoError(t, f.porters.Create(f.ctx, p))
	return p
}

func (f *fixture) addLocation(t *testing.T, code, name string) *model.Location {
	t.Helper()
	l := &model.Location{Code: code, Name: name, Active: true}
	require.NoError(t, f.locations.Create(f.ctx, l))
	return l
}

func (f *fixture) addCost(t *testing.T, from, to *model.Location, carrier *model.Carrier, cost int64, active bool) *model.CommuteCost {
	t.Helper()
	c := &model.CommuteCost{
		FromLocationID: from.ID, ToLocationID: to.ID, CarrierID: carrier.ID,
		Cost: decimal.NewFromInt(cost), Active: active,
	}
	require.NoError(t, f.costs.Create(f.ctx, c))
	return c
}

// record creates an attendance entry through the service.
func (f *fixture) record(t *testing.T, date string, p *model.Porter, from, to *model.Location) *dto.AttendanceResponse {
	t.Helper()
	resp, err := f.attendSvc.Create(f.ctx, f.admin.ID, dto.CreateAttendanceRequest{
		Date:           date,
		CarrierID:      f.porter.ID.String(),
		PorterID:       p.ID.String(),
		LocationFromID: from.ID.String(),
		LocationToID:   to.ID.String(),
		Task:           "Load transfer",
	})
	require.NoError(t, err)
	return resp
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected *apierror.Error, got %T: %v", err, err)
	require.Equal(t, status, apiErr.Status, apiErr.Message)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func dtoCreate(f *fixture, date string, p *model.Porter, carrier *model.Carrier) dto.CreateAttendanceRequest {
	return dto.CreateAttendanceRequest{
		Date:           date,
		CarrierID:      carrier.ID.String(),
		PorterID:       p.ID.String(),
		LocationFromID: f.wh1.ID.String(),
		LocationToID:   f.wh2.ID.String(),
		Task:           "Load transfer",
	}
}
