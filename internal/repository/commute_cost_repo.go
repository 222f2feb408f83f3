package repository

import (
	"context"

	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Route identifies a commute cost row.
type Route struct {
	FromLocationID uuid.UUID
	ToLocationID   uuid.UUID
	CarrierID      uuid.UUID
}

// CommuteCostQuery filters List. Nil pointers are ignored.
type CommuteCostQuery struct {
	FromLocationID *uuid.UUID
	ToLocationID   *uuid.UUID
	CarrierID      *uuid.UUID
	Offset         int
	Limit          int
}

type CommuteCostRepository interface {
	Create(ctx context.Context, c *model.CommuteCost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CommuteCost, error)
	// FindByRoute returns the row for the exact triple, active or not.
	FindByRoute(ctx context.Context, route Route) (*model.CommuteCost, error)
	// FindActiveByRoute returns the active row for the exact triple.
	FindActiveByRoute(ctx context.Context, route Route) (*model.CommuteCost, error)
	List(ctx context.Context, q CommuteCostQuery) ([]model.CommuteCost, int64, error)
	Update(ctx context.Context, c *model.CommuteCost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commuteCostRepo struct{ db *gorm.DB }

func NewCommuteCostRepository(db *gorm.DB) CommuteCostRepository {
	return &commuteCostRepo{db: db}
}

func (r *commuteCostRepo) Create(ctx context.Context, c *model.CommuteCost) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commuteCostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CommuteCost, error) {
	var c model.CommuteCost
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commuteCostRepo) routeQuery(ctx context.Context, route Route) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("from_location_id = ? AND to_location_id = ? AND carrier_id = ?",
			route.FromLocationID, route.ToLocationID, route.CarrierID)
}

func (r *commuteCostRepo) FindByRoute(ctx context.Context, route Route) (*model.CommuteCost, error) {
	var c model.CommuteCost
	if err := r.routeQuery(ctx, route).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commuteCostRepo) FindActiveByRoute(ctx context.Context, route Route) (*model.CommuteCost, error) {
	var c model.CommuteCost
	if err := r.routeQuery(ctx, route).Where("active = ?", true).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commuteCostRepo) List(ctx context.Context, q CommuteCostQuery) ([]model.CommuteCost, int64, error) {
	var list []model.CommuteCost
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CommuteCost{})
	if q.FromLocationID != nil {
		db = db.Where("from_location_id = ?", *q.FromLocationID)
	}
	if q.ToLocationID != nil {
		db = db.Where("to_location_id = ?", *q.ToLocationID)
	}
	if q.CarrierID != nil {
		db = db.Where("carrier_id = ?", *q.CarrierID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	err := db.Order("created_at DESC").Find(&list).Error
	return list, total, err
}

func (r *commuteCostRepo) Update(ctx context.Context, c *model.CommuteCost) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *commuteCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.CommuteCost{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
