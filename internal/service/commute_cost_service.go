package service

import (
	"context"
	"errors"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoCommuteCost is returned by Resolve when no active row prices a route.
var ErrNoCommuteCost = apierror.NotFound("commute cost not found for this route and carrier")

type CommuteCostService interface {
	List(ctx context.Context, filter dto.CommuteCostFilter) (*dto.CommuteCostListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CommuteCostResponse, error)
	// Find looks a route up and returns nil when nothing prices it.
	Find(ctx context.Context, q dto.FindCommuteCostQuery) (*dto.CommuteCostResponse, error)
	// Resolve returns the single active row for the exact (from, to, carrier)
	// triple. There is no fallback and no reverse-direction lookup.
	Resolve(ctx context.Context, route repository.Route) (*model.CommuteCost, error)
	Create(ctx context.Context, actor uuid.UUID, req dto.CreateCommuteCostRequest) (*dto.CommuteCostResponse, error)
	Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateCommuteCostRequest) (*dto.CommuteCostResponse, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
	Import(ctx context.Context, actor uuid.UUID, rows []CommuteCostRow) (*dto.ImportResult, error)
}

type commuteCostService struct {
	repo      repository.CommuteCostRepository
	locations repository.LocationRepository
	carriers  repository.CarrierRepository
	views     *ReadModels
	activity  ActivityService
}

func NewCommuteCostService(
	repo repository.CommuteCostRepository,
	locations repository.LocationRepository,
	carriers repository.CarrierRepository,
	views *ReadModels,
	activity ActivityService,
) CommuteCostService {
	return &commuteCostService{repo: repo, locations: locations, carriers: carriers, views: views, activity: activity}
}

func (s *commuteCostService) List(ctx context.Context, filter dto.CommuteCostFilter) (*dto.CommuteCostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	q := repository.CommuteCostQuery{Offset: (filter.Page - 1) * filter.Limit, Limit: filter.Limit}
	for _, f := range []struct {
		field, raw string
		dst        **uuid.UUID
	}{
		{"from", filter.From, &q.FromLocationID},
		{"to", filter.To, &q.ToLocationID},
		{"carrier", filter.Carrier, &q.CarrierID},
	} {
		if f.raw == "" {
			continue
		}
		id, err := parseID(f.field, f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = &id
	}

	list, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views, err := s.views.CommuteCosts(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.CommuteCostListResponse{
		CommuteCosts: views,
		Total:        total,
		CurrentPage:  filter.Page,
		TotalPages:   dto.TotalPages(total, filter.Limit),
	}, nil
}

func (s *commuteCostService) Get(ctx context.Context, id uuid.UUID) (*dto.CommuteCostResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "commute cost not found")
	}
	return s.views.CommuteCostOne(ctx, *c)
}

func (s *commuteCostService) Find(ctx context.Context, q dto.FindCommuteCostQuery) (*dto.CommuteCostResponse, error) {
	route, err := routeFromStrings(q.FromLocationID, q.ToLocationID, q.CarrierID)
	if err != nil {
		return nil, err
	}
	c, err := s.Resolve(ctx, route)
	if err != nil {
		if apierror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.views.CommuteCostOne(ctx, *c)
}

func (s *commuteCostService) Resolve(ctx context.Context, route repository.Route) (*model.CommuteCost, error) {
	c, err := s.repo.FindActiveByRoute(ctx, route)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCommuteCost
		}
		return nil, err
	}
	return c, nil
}

// ensureRouteFree rejects a triple already used by a row other than self.
func (s *commuteCostService) ensureRouteFree(ctx context.Context, route repository.Route, self uuid.UUID) error {
	existing, err := s.repo.FindByRoute(ctx, route)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return apierror.Conflict("a commute cost already exists for this route and carrier")
	}
	return nil
}

func (s *commuteCostService) ensureRefsExist(ctx context.Context, route repository.Route) error {
	if _, err := s.locations.FindByID(ctx, route.FromLocationID); err != nil {
		return notFound(err, "from location not found")
	}
	if _, err := s.locations.FindByID(ctx, route.ToLocationID); err != nil {
		return notFound(err, "to location not found")
	}
	if _, err := s.carriers.FindByID(ctx, route.CarrierID); err != nil {
		return notFound(err, "carrier not found")
	}
	return nil
}

func (s *commuteCostService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateCommuteCostRequest) (*dto.CommuteCostResponse, error) {
	route, err := routeFromStrings(req.FromLocationID, req.ToLocationID, req.CarrierID)
	if err != nil {
		return nil, err
	}
	if req.Cost == nil || req.Cost.IsNegative() {
		return nil, apierror.Validation([]apierror.FieldError{{Field: "cost", Message: "cost must be zero or greater"}})
	}
	if err := s.ensureRefsExist(ctx, route); err != nil {
		return nil, err
	}
	if err := s.ensureRouteFree(ctx, route, uuid.Nil); err != nil {
		return nil, err
	}

	c := &model.CommuteCost{
		FromLocationID: route.FromLocationID,
		ToLocationID:   route.ToLocationID,
		CarrierID:      route.CarrierID,
		Cost:           *req.Cost,
		Active:         true,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("a commute cost already exists for this route and carrier")
		}
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityCommuteCostCreated, "Commute cost created",
		map[string]any{"commuteCostId": c.ID.String(), "cost": c.Cost.String()})
	return s.views.CommuteCostOne(ctx, *c)
}

func (s *commuteCostService) Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdateCommuteCostRequest) (*dto.CommuteCostResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "commute cost not found")
	}

	route := repository.Route{FromLocationID: c.FromLocationID, ToLocationID: c.ToLocationID, CarrierID: c.CarrierID}
	changed := false
	for _, f := range []struct {
		field string
		raw   *string
		dst   *uuid.UUID
	}{
		{"fromLocationId", req.FromLocationID, &route.FromLocationID},
		{"toLocationId", req.ToLocationID, &route.ToLocationID},
		{"carrierId", req.CarrierID, &route.CarrierID},
	} {
		if f.raw == nil {
			continue
		}
		parsed, err := parseID(f.field, *f.raw)
		if err != nil {
			return nil, err
		}
		if parsed != *f.dst {
			*f.dst = parsed
			changed = true
		}
	}
	if changed {
		if err := s.ensureRefsExist(ctx, route); err != nil {
			return nil, err
		}
		if err := s.ensureRouteFree(ctx, route, id); err != nil {
			return nil, err
		}
		c.FromLocationID, c.ToLocationID, c.CarrierID = route.FromLocationID, route.ToLocationID, route.CarrierID
	}

	oldCost := c.Cost
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apierror.Validation([]apierror.FieldError{{Field: "cost", Message: "cost must be zero or greater"}})
		}
		c.Cost = *req.Cost
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("a commute cost already exists for this route and carrier")
		}
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityCommuteCostUpdated, "Commute cost updated",
		map[string]any{"commuteCostId": c.ID.String(), "oldCost": oldCost.String(), "newCost": c.Cost.String()})
	return s.views.CommuteCostOne(ctx, *c)
}

func (s *commuteCostService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "commute cost not found")
	}
	s.activity.Record(ctx, actor, model.ActivityCommuteCostDeleted, "Commute cost deleted",
		map[string]any{"commuteCostId": id.String()})
	return nil
}

func routeFromStrings(from, to, carrier string) (repository.Route, error) {
	var route repository.Route
	var err error
	if route.FromLocationID, err = parseID("fromLocationId", from); err != nil {
		return route, err
	}
	if route.ToLocationID, err = parseID("toLocationId", to); err != nil {
		return route, err
	}
	if route.CarrierID, err = parseID("carrierId", carrier); err != nil {
		return route, err
	}
	return route, nil
}
