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

type CarrierService interface {
	List(ctx context.Context, active string) ([]dto.CarrierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CarrierResponse, error)
	Create(ctx context.Context, actor uuid.UUID, req dto.CreateCarrierRequest) (*dto.CarrierResponse, error)
	Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateCarrierRequest) (*dto.CarrierResponse, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

type carrierService struct {
	repo     repository.CarrierRepository
	activity ActivityService
}

func NewCarrierService(repo repository.CarrierRepository, activity ActivityService) CarrierService {
	return &carrierService{repo: repo, activity: activity}
}

func mapCarrier(c model.Carrier) dto.CarrierResponse {
	return dto.CarrierResponse{
		ID:         c.ID,
		Name:       c.Name,
		CapacityKg: c.CapacityKg,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (s *carrierService) List(ctx context.Context, active string) ([]dto.CarrierResponse, error) {
	list, err := s.repo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CarrierResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCarrier(c))
	}
	return out, nil
}

func (s *carrierService) Get(ctx context.Context, id uuid.UUID) (*dto.CarrierResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "carrier not found")
	}
	resp := mapCarrier(*c)
	return &resp, nil
}

func (s *carrierService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return apierror.Conflict("carrier " + name + " already exists")
	}
	return nil
}

func (s *carrierService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateCarrierRequest) (*dto.CarrierResponse, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	c := &model.Carrier{Name: name, CapacityKg: *req.CapacityKg, Active: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityCarrierCreated, "Carrier "+c.Name+" created",
		map[string]any{"carrierId": c.ID.String()})
	resp := mapCarrier(*c)
	return &resp, nil
}

func (s *carrierService) Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateCarrierRequest) (*dto.CarrierResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "carrier not found")
	}
	if req.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Name))
		if name != c.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		c.Name = name
	}
	if req.CapacityKg != nil {
		c.CapacityKg = *req.CapacityKg
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityCarrierUpdated, "Carrier "+c.Name+" updated",
		map[string]any{"carrierId": c.ID.String()})
	resp := mapCarrier(*c)
	return &resp, nil
}

func (s *carrierService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "carrier not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, model.ActivityCarrierDeleted, "Carrier "+c.Name+" deactivated",
		map[string]any{"carrierId": c.ID.String()})
	return nil
}
