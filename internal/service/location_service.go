package service

import (
	"context"
	"errors"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationService interface {
	List(ctx context.Context, filter dto.LocationFilter) ([]dto.LocationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error)
	Create(ctx context.Context, actor uuid.UUID, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

type locationService struct {
	repo     repository.LocationRepository
	activity ActivityService
}

func NewLocationService(repo repository.LocationRepository, activity ActivityService) LocationService {
	return &locationService{repo: repo, activity: activity}
}

// NormalizeCode is the canonical form of a location code.
func NormalizeCode(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

func mapLocation(l model.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (s *locationService) List(ctx context.Context, filter dto.LocationFilter) ([]dto.LocationResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, mapLocation(l))
	}
	return out, nil
}

func (s *locationService) Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "location not found")
	}
	resp := mapLocation(*l)
	return &resp, nil
}

func (s *locationService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return apierror.Conflict("a location with this code already exists")
	}
	return nil
}

func (s *locationService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	code := NormalizeCode(req.Code)
	if err := s.ensureCodeFree(ctx, code, uuid.Nil); err != nil {
		return nil, err
	}
	l := &model.Location{Code: code, Name: strings.TrimSpace(req.Name), Active: true}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityLocationCreated, "Location "+l.Code+" created",
		map[string]any{"locationId": l.ID.String(), "code": l.Code})
	resp := mapLocation(*l)
	return &resp, nil
}

func (s *locationService) Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "location not found")
	}
	if req.Code != nil {
		code := NormalizeCode(*req.Code)
		if code != l.Code {
			if err := s.ensureCodeFree(ctx, code, id); err != nil {
				return nil, err
			}
		}
		l.Code = code
	}
	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		l.Active = *req.Active
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityLocationUpdated, "Location "+l.Code+" updated",
		map[string]any{"locationId": l.ID.String()})
	resp := mapLocation(*l)
	return &resp, nil
}

func (s *locationService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "location not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, model.ActivityLocationDeleted, "Location "+l.Code+" deactivated",
		map[string]any{"locationId": l.ID.String()})
	return nil
}
