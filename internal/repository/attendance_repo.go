package repository

import (
	"context"
	"time"

	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceQuery selects entries with Start <= date < End. Zero times and
// nil pointers are ignored.
type AttendanceQuery struct {
	Start    time.Time
	End      time.Time
	PorterID *uuid.UUID
	Offset   int
	Limit    int
}

type AttendanceRepository interface {
	Create(ctx context.Context, a *model.AttendanceEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceEntry, error)
	Update(ctx context.Context, a *model.AttendanceEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page ordered by date desc plus the total match count.
	List(ctx context.Context, q AttendanceQuery) ([]model.AttendanceEntry, int64, error)
	// ListInRange returns every matching entry ordered by date asc.
	ListInRange(ctx context.Context, q AttendanceQuery) ([]model.AttendanceEntry, error)
	Recent(ctx context.Context, limit int) ([]model.AttendanceEntry, error)
	CountDistinctPorters(ctx context.Context) (int64, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) Create(ctx context.Context, a *model.AttendanceEntry) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceEntry, error) {
	var a model.AttendanceEntry
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.AttendanceEntry) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *attendanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.AttendanceEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepo) filtered(ctx context.Context, q AttendanceQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.AttendanceEntry{})
	if !q.Start.IsZero() {
		db = db.Where("date >= ?", q.Start)
	}
	if !q.End.IsZero() {
		db = db.Where("date < ?", q.End)
	}
	if q.PorterID != nil {
		db = db.Where("porter_id = ?", *q.PorterID)
	}
	return db
}

func (r *attendanceRepo) List(ctx context.Context, q AttendanceQuery) ([]model.AttendanceEntry, int64, error) {
	var list []model.AttendanceEntry
	var total int64

	db := r.filtered(ctx, q)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	err := db.Order("date DESC").Order("created_at DESC").Find(&list).Error
	return list, total, err
}

func (r *attendanceRepo) ListInRange(ctx context.Context, q AttendanceQuery) ([]model.AttendanceEntry, error) {
	var list []model.AttendanceEntry
	err := r.filtered(ctx, q).Order("date ASC").Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *attendanceRepo) Recent(ctx context.Context, limit int) ([]model.AttendanceEntry, error) {
	var list []model.AttendanceEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *attendanceRepo) CountDistinctPorters(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceEntry{}).
		Distinct("porter_id").Count(&n).Error
	return n, err
}
