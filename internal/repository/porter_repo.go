package repository

import (
	"context"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PorterRepository interface {
	Create(ctx context.Context, p *model.Porter) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Porter, error)
	FindByUID(ctx context.Context, uid string) (*model.Porter, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Porter, error)
	List(ctx context.Context, filter dto.PorterFilter) ([]model.Porter, int64, error)
	Update(ctx context.Context, p *model.Porter) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type porterRepo struct{ db *gorm.DB }

func NewPorterRepository(db *gorm.DB) PorterRepository { return &porterRepo{db: db} }

func (r *porterRepo) Create(ctx context.Context, p *model.Porter) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *porterRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Porter, error) {
	var p model.Porter
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *porterRepo) FindByUID(ctx context.Context, uid string) (*model.Porter, error) {
	var p model.Porter
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *porterRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Porter, error) {
	var list []model.Porter
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *porterRepo) List(ctx context.Context, filter dto.PorterFilter) ([]model.Porter, int64, error) {
	var list []model.Porter
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Porter{})
	q = applyActive(q, filter.Active)
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		switch filter.Field {
		case "name", "uid", "designation":
			q = q.Where("LOWER("+filter.Field+") LIKE ?", like)
		default:
			q = q.Where("LOWER(name) LIKE ? OR LOWER(uid) LIKE ? OR LOWER(designation) LIKE ?", like, like, like)
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *porterRepo) Update(ctx context.Context, p *model.Porter) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *porterRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Porter{}).Where("id = ?", id).Update("active", false).Error
}

// applyActive narrows q to active or inactive rows when flag is "true"/"false".
func applyActive(q *gorm.DB, flag string) *gorm.DB {
	switch strings.ToLower(flag) {
	case "true":
		return q.Where("active = ?", true)
	case "false":
		return q.Where("active = ?", false)
	}
	return q
}
