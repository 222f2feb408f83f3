package worker

// activity_worker.go
// Writes activity records queued by the request path to the database.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"gorm.io/gorm"
)

type ActivityWorker struct {
	repo repository.ActivityRepository
}

func NewActivityWorker(repo repository.ActivityRepository) *ActivityWorker {
	return &ActivityWorker{repo: repo}
}

// Process inserts one activity. A redelivered record whose id is already
// stored counts as done.
func (w *ActivityWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var a model.Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		return fmt.Errorf("activity_worker: invalid payload: %w", err)
	}
	if err := w.repo.Create(ctx, &a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
