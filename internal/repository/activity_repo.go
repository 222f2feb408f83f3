package repository

import (
	"context"

	"github.com/abhishek972986/porter-managment/internal/model"

	"gorm.io/gorm"
)

// ActivityRepository is append-only: there is no update or delete.
type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	var list []model.Activity
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}
