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

type PorterService interface {
	List(ctx context.Context, filter dto.PorterFilter) (*dto.PorterListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PorterResponse, error)
	Create(ctx context.Context, actor uuid.UUID, req dto.CreatePorterRequest) (*dto.PorterResponse, error)
	Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdatePorterRequest) (*dto.PorterResponse, error)
	// Delete deactivates the porter. Attendance rows are untouched.
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

type porterService struct {
	repo     repository.PorterRepository
	activity ActivityService
}

func NewPorterService(repo repository.PorterRepository, activity ActivityService) PorterService {
	return &porterService{repo: repo, activity: activity}
}

func mapPorter(p model.Porter) dto.PorterResponse {
	return dto.PorterResponse{
		ID:          p.ID,
		UID:         p.UID,
		Name:        p.Name,
		Designation: p.Designation,
		AccountNo:   p.AccountNo,
		FatherName:  p.FatherName,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (s *porterService) List(ctx context.Context, filter dto.PorterFilter) (*dto.PorterListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PorterListResponse{
		Porters:     make([]dto.PorterResponse, 0, len(list)),
		Total:       total,
		CurrentPage: filter.Page,
		TotalPages:  dto.TotalPages(total, filter.Limit),
	}
	for _, p := range list {
		resp.Porters = append(resp.Porters, mapPorter(p))
	}
	return resp, nil
}

func (s *porterService) Get(ctx context.Context, id uuid.UUID) (*dto.PorterResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "porter not found")
	}
	resp := mapPorter(*p)
	return &resp, nil
}

func (s *porterService) ensureUIDFree(ctx context.Context, uid string, self uuid.UUID) error {
	existing, err := s.repo.FindByUID(ctx, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != self {
		return apierror.Conflict("a porter with this uid already exists")
	}
	return nil
}

func (s *porterService) Create(ctx context.Context, actor uuid.UUID, req dto.CreatePorterRequest) (*dto.PorterResponse, error) {
	uid := strings.TrimSpace(req.UID)
	if err := s.ensureUIDFree(ctx, uid, uuid.Nil); err != nil {
		return nil, err
	}
	p := &model.Porter{
		UID:         uid,
		Name:        strings.TrimSpace(req.Name),
		Designation: strings.TrimSpace(req.Designation),
		AccountNo:   strings.TrimSpace(req.AccountNo),
		FatherName:  strings.TrimSpace(req.FatherName),
		Active:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityPorterCreated, "Porter "+p.Name+" created",
		map[string]any{"porterId": p.ID.String(), "uid": p.UID})
	resp := mapPorter(*p)
	return &resp, nil
}

func (s *porterService) Update(ctx context.Context, actor, id uuid.UUID, req dto.UpdatePorterRequest) (*dto.PorterResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "porter not found")
	}
	if req.UID != nil {
		uid := strings.TrimSpace(*req.UID)
		if uid != p.UID {
			if err := s.ensureUIDFree(ctx, uid, id); err != nil {
				return nil, err
			}
		}
		p.UID = uid
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Designation != nil {
		p.Designation = strings.TrimSpace(*req.Designation)
	}
	if req.AccountNo != nil {
		p.AccountNo = strings.TrimSpace(*req.AccountNo)
	}
	if req.FatherName != nil {
		p.FatherName = strings.TrimSpace(*req.FatherName)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, model.ActivityPorterUpdated, "Porter "+p.Name+" updated",
		map[string]any{"porterId": p.ID.String()})
	resp := mapPorter(*p)
	return &resp, nil
}

func (s *porterService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "porter not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, model.ActivityPorterDeleted, "Porter "+p.Name+" deactivated",
		map[string]any{"porterId": p.ID.String()})
	return nil
}
