package worker_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubActivityRepo struct {
	stored map[uuid.UUID]model.Activity
}

func (r *stubActivityRepo) Create(_ context.Context, a *model.Activity) error {
	if _, ok := r.stored[a.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.stored[a.ID] = *a
	return nil
}

func (r *stubActivityRepo) Recent(context.Context, int) ([]model.Activity, error) { return nil, nil }

func TestActivityWorker_Process(t *testing.T) {
	repo := &stubActivityRepo{stored: map[uuid.UUID]model.Activity{}}
	w := worker.NewActivityWorker(repo)

	a := model.Activity{ID: uuid.New(), Type: model.ActivityUserLogin, Description: "Admin logged in", UserID: uuid.New()}
	raw, err := json.Marshal(a)
	require.NoError(t, err)

	require.NoError(t, w.Process(context.Background(), raw))
	assert.Equal(t, "Admin logged in", repo.stored[a.ID].Description)

	// Redelivery is not an error
	require.NoError(t, w.Process(context.Background(), raw))
	assert.Len(t, repo.stored, 1)

	assert.Error(t, w.Process(context.Background(), json.RawMessage(`{"id":`)))
}
