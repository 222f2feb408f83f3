package service

import (
	"context"

	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
)

// ReadModels assembles fully resolved views of attendance entries and
// commute costs. Every reference expansion goes through here: one batched
// lookup per referenced table, no per-row queries.
type ReadModels struct {
	porters   repository.PorterRepository
	locations repository.LocationRepository
	carriers  repository.CarrierRepository
	users     repository.UserRepository
}

func NewReadModels(
	porters repository.PorterRepository,
	locations repository.LocationRepository,
	carriers repository.CarrierRepository,
	users repository.UserRepository,
) *ReadModels {
	return &ReadModels{porters: porters, locations: locations, carriers: carriers, users: users}
}

type refs struct {
	porters   map[uuid.UUID]model.Porter
	locations map[uuid.UUID]model.Location
	carriers  map[uuid.UUID]model.Carrier
	users     map[uuid.UUID]model.User
}

type refIDs struct {
	porters, locations, carriers, users []uuid.UUID
}

func (rm *ReadModels) load(ctx context.Context, ids refIDs) (*refs, error) {
	out := &refs{
		porters:   map[uuid.UUID]model.Porter{},
		locations: map[uuid.UUID]model.Location{},
		carriers:  map[uuid.UUID]model.Carrier{},
		users:     map[uuid.UUID]model.User{},
	}
	if len(ids.porters) > 0 {
		list, err := rm.porters.FindByIDs(ctx, uniqueIDs(ids.porters))
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			out.porters[p.ID] = p
		}
	}
	if len(ids.locations) > 0 {
		list, err := rm.locations.FindByIDs(ctx, uniqueIDs(ids.locations))
		if err != nil {
			return nil, err
		}
		for _, l := range list {
			out.locations[l.ID] = l
		}
	}
	if len(ids.carriers) > 0 {
		list, err := rm.carriers.FindByIDs(ctx, uniqueIDs(ids.carriers))
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			out.carriers[c.ID] = c
		}
	}
	if len(ids.users) > 0 {
		list, err := rm.users.FindByIDs(ctx, uniqueIDs(ids.users))
		if err != nil {
			return nil, err
		}
		for _, u := range list {
			out.users[u.ID] = u
		}
	}
	return out, nil
}

// A reference whose row is gone still carries its ID.

func (r *refs) porter(id uuid.UUID) dto.PorterRef {
	p, ok := r.porters[id]
	if !ok {
		return dto.PorterRef{ID: id}
	}
	return dto.PorterRef{ID: p.ID, UID: p.UID, Name: p.Name, Designation: p.Designation}
}

func (r *refs) location(id uuid.UUID) dto.LocationRef {
	l, ok := r.locations[id]
	if !ok {
		return dto.LocationRef{ID: id}
	}
	return dto.LocationRef{ID: l.ID, Code: l.Code, Name: l.Name}
}

func (r *refs) carrier(id uuid.UUID) dto.CarrierRef {
	c, ok := r.carriers[id]
	if !ok {
		return dto.CarrierRef{ID: id}
	}
	return dto.CarrierRef{ID: c.ID, Name: c.Name, CapacityKg: c.CapacityKg}
}

func (r *refs) user(id uuid.UUID) *dto.UserRef {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	return &dto.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Attendance resolves entries in their given order.
func (rm *ReadModels) Attendance(ctx context.Context, entries []model.AttendanceEntry) ([]dto.AttendanceResponse, error) {
	var ids refIDs
	for _, e := range entries {
		ids.porters = append(ids.porters, e.PorterID)
		ids.carriers = append(ids.carriers, e.CarrierID)
		ids.locations = append(ids.locations, e.LocationFromID, e.LocationToID)
		ids.users = append(ids.users, e.CreatedByID)
	}
	r, err := rm.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AttendanceResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AttendanceResponse{
			ID:            e.ID,
			Date:          dates.FormatDay(e.Date),
			Porter:        r.porter(e.PorterID),
			Carrier:       r.carrier(e.CarrierID),
			LocationFrom:  r.location(e.LocationFromID),
			LocationTo:    r.location(e.LocationToID),
			Task:          e.Task,
			CommuteCostID: e.CommuteCostID,
			ComputedCost:  e.ComputedCost,
			CreatedBy:     r.user(e.CreatedByID),
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		})
	}
	return out, nil
}

// AttendanceOne resolves a single entry.
func (rm *ReadModels) AttendanceOne(ctx context.Context, e model.AttendanceEntry) (*dto.AttendanceResponse, error) {
	list, err := rm.Attendance(ctx, []model.AttendanceEntry{e})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CommuteCosts resolves commute cost rows in their given order.
func (rm *ReadModels) CommuteCosts(ctx context.Context, costs []model.CommuteCost) ([]dto.CommuteCostResponse, error) {
	var ids refIDs
	for _, c := range costs {
		ids.locations = append(ids.locations, c.FromLocationID, c.ToLocationID)
		ids.carriers = append(ids.carriers, c.CarrierID)
	}
	r, err := rm.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommuteCostResponse, 0, len(costs))
	for _, c := range costs {
		out = append(out, dto.CommuteCostResponse{
			ID:           c.ID,
			FromLocation: r.location(c.FromLocationID),
			ToLocation:   r.location(c.ToLocationID),
			Carrier:      r.carrier(c.CarrierID),
			Cost:         c.Cost,
			Active:       c.Active,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
		})
	}
	return out, nil
}

func (rm *ReadModels) CommuteCostOne(ctx context.Context, c model.CommuteCost) (*dto.CommuteCostResponse, error) {
	list, err := rm.CommuteCosts(ctx, []model.CommuteCost{c})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Porters loads porter rows by id, keyed by id.
func (rm *ReadModels) Porters(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Porter, error) {
	r, err := rm.load(ctx, refIDs{porters: ids})
	if err != nil {
		return nil, err
	}
	return r.porters, nil
}
