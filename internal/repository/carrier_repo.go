package repository

import (
	"context"

	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarrierRepository interface {
	Create(ctx context.Context, c *model.Carrier) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Carrier, error)
	FindByName(ctx context.Context, name string) (*model.Carrier, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Carrier, error)
	List(ctx context.Context, active string) ([]model.Carrier, error)
	Update(ctx context.Context, c *model.Carrier) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type carrierRepo struct{ db *gorm.DB }

func NewCarrierRepository(db *gorm.DB) CarrierRepository { return &carrierRepo{db: db} }

func (r *carrierRepo) Create(ctx context.Context, c *model.Carrier) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *carrierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Carrier, error) {
	var c model.Carrier
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carrierRepo) FindByName(ctx context.Context, name string) (*model.Carrier, error) {
	var c model.Carrier
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carrierRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Carrier, error) {
	var list []model.Carrier
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *carrierRepo) List(ctx context.Context, active string) ([]model.Carrier, error) {
	var list []model.Carrier
	err := applyActive(r.db.WithContext(ctx).Model(&model.Carrier{}), active).
		Order("name ASC").Find(&list).Error
	return list, err
}

func (r *carrierRepo) Update(ctx context.Context, c *model.Carrier) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *carrierRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Carrier{}).Where("id = ?", id).Update("active", false).Error
}
