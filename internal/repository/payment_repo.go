package repository

import (
	"context"
	"time"

	"github.com/abhishek972986/porter-managment/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentChange is one write against a (porter, year, month) payment row.
// With Increment set, Amount is added to the stored total; otherwise it
// replaces it. Notes is left untouched when nil.
type PaymentChange struct {
	PorterID    uuid.UUID
	Year        int
	Month       int
	Amount      decimal.Decimal
	Increment   bool
	Notes       *string
	UpdatedByID uuid.UUID
	At          time.Time
}

type PaymentRepository interface {
	Find(ctx context.Context, porterID uuid.UUID, year, month int) (*model.Payment, error)
	// Upsert applies change in a single INSERT ... ON CONFLICT statement so
	// concurrent writers never lose an increment.
	Upsert(ctx context.Context, change PaymentChange) (*model.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Find(ctx context.Context, porterID uuid.UUID, year, month int) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("porter_id = ? AND year = ? AND month = ?", porterID, year, month).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) Upsert(ctx context.Context, change PaymentChange) (*model.Payment, error) {
	at := change.At
	if at.IsZero() {
		at = time.Now()
	}
	updatedBy := change.UpdatedByID
	row := model.Payment{
		PorterID:    change.PorterID,
		Year:        change.Year,
		Month:       change.Month,
		Amount:      change.Amount,
		IsPaid:      change.Amount.IsPositive(),
		PaidAt:      &at,
		UpdatedByID: &updatedBy,
	}
	if change.Notes != nil {
		row.Notes = *change.Notes
	}

	updates := map[string]interface{}{
		"amount":        gorm.Expr("excluded.amount"),
		"is_paid":       gorm.Expr("excluded.is_paid"),
		"paid_at":       gorm.Expr("excluded.paid_at"),
		"updated_by_id": gorm.Expr("excluded.updated_by_id"),
		"updated_at":    gorm.Expr("excluded.updated_at"),
	}
	if change.Increment {
		updates["amount"] = gorm.Expr("payments.amount + excluded.amount")
		updates["is_paid"] = gorm.Expr("payments.amount + excluded.amount > 0")
	}
	if change.Notes != nil {
		updates["notes"] = gorm.Expr("excluded.notes")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "porter_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, change.PorterID, change.Year, change.Month)
}
