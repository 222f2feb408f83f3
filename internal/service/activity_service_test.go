package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnqueuer struct {
	err    error
	queued []*model.Activity
}

func (q *stubEnqueuer) EnqueueActivity(_ context.Context, a *model.Activity) error {
	if q.err != nil {
		return q.err
	}
	q.queued = append(q.queued, a)
	return nil
}

func TestActivity_Record_UsesQueue(t *testing.T) {
	f := newFixture(t)
	queue := &stubEnqueuer{}
	svc := service.NewActivityService(f.activities, f.users, queue)

	svc.Record(f.ctx, f.admin.ID, model.ActivityPorterCreated, "Porter created", map[string]any{"uid": "P001"})
	require.Len(t, queue.queued, 1)
	assert.Equal(t, f.admin.ID, queue.queued[0].UserID)

	stored, err := f.activities.Recent(f.ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, stored, "queued records are written by the worker")
}

func TestActivity_Record_FallsBackToDirectWrite(t *testing.T) {
	f := newFixture(t)
	svc := service.NewActivityService(f.activities, f.users, &stubEnqueuer{err: errors.New("redis down")})

	svc.Record(f.ctx, f.admin.ID, model.ActivityLocationCreated, "Location created", nil)

	recent, err := svc.Recent(f.ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, model.ActivityLocationCreated, recent[0].Type)
	require.NotNil(t, recent[0].User)
	assert.Equal(t, "Admin", recent[0].User.Name)
}

func TestActivity_Record_SwallowsWriteFailure(t *testing.T) {
	f := newFixture(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.NotPanics(t, func() {
		f.activity.Record(f.ctx, f.admin.ID, model.ActivityPorterDeleted, "Porter deleted", nil)
	})
}
