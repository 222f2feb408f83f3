package service

import (
	"context"
	"time"

	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ActivityEnqueuer hands an activity to the async writer.
type ActivityEnqueuer interface {
	EnqueueActivity(ctx context.Context, a *model.Activity) error
}

// ActivityService appends audit records. Record never fails the caller:
// errors are logged and dropped.
type ActivityService interface {
	Record(ctx context.Context, userID uuid.UUID, activityType, description string, metadata map[string]any)
	Recent(ctx context.Context, limit int) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo  repository.ActivityRepository
	users repository.UserRepository
	queue ActivityEnqueuer // optional
}

func NewActivityService(repo repository.ActivityRepository, users repository.UserRepository, queue ActivityEnqueuer) ActivityService {
	return &activityService{repo: repo, users: users, queue: queue}
}

func (s *activityService) Record(ctx context.Context, userID uuid.UUID, activityType, description string, metadata map[string]any) {
	a := &model.Activity{
		ID:          uuid.New(),
		Type:        activityType,
		Description: description,
		UserID:      userID,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	if s.queue != nil {
		err := s.queue.EnqueueActivity(ctx, a)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("type", activityType).Msg("activity enqueue failed, writing directly")
	}

	// Outlives the request context.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.repo.Create(writeCtx, a); err != nil {
		log.Warn().Err(err).Str("type", activityType).Msg("activity log write failed")
	}
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	list, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.UserID)
	}
	users, err := s.users.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		resp := dto.ActivityResponse{
			ID:          a.ID,
			Type:        a.Type,
			Description: a.Description,
			Metadata:    a.Metadata,
			CreatedAt:   a.CreatedAt,
		}
		if u, ok := byID[a.UserID]; ok {
			resp.User = &dto.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out = append(out, resp)
	}
	return out, nil
}
