package repository

import (
	"context"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	FindByCode(ctx context.Context, code string) (*model.Location, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Location, error)
	List(ctx context.Context, filter dto.LocationFilter) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) FindByCode(ctx context.Context, code string) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Location, error) {
	var list []model.Location
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *locationRepo) List(ctx context.Context, filter dto.LocationFilter) ([]model.Location, error) {
	var list []model.Location
	q := applyActive(r.db.WithContext(ctx).Model(&model.Location{}), filter.Active)
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	err := q.Order("code ASC").Find(&list).Error
	return list, err
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Location{}).Where("id = ?", id).Update("active", false).Error
}
