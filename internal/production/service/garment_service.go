package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/sse"
)

// GarmentService manages product references. References are normalized to
// upper case and stay unique across soft-deleted rows too, so a retired
// reference cannot be silently recycled.
type GarmentService struct {
	repo *repository.GarmentRepository
}

func NewGarmentService(repo *repository.GarmentRepository) *GarmentService {
	return &GarmentService{repo: repo}
}

type GarmentRequest struct {
	Reference   string `json:"reference" binding:"required"`
	Description string `json:"description"`
}

func (s *GarmentService) Create(ctx context.Context, req GarmentRequest) (*entity.Garment, error) {
	reference := strings.ToUpper(strings.TrimSpace(req.Reference))

	if existing, err := s.repo.FindByReference(ctx, reference); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, reference)
	} else if err != nil && err != repository.ErrNotFound {
		return nil, err
	}

	g := &entity.Garment{
		Reference:   reference,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("garments", "created", g.ID)
	return g, nil
}

func (s *GarmentService) Update(ctx context.Context, id uint, req GarmentRequest) (*entity.Garment, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reference := strings.ToUpper(strings.TrimSpace(req.Reference))
	if reference != g.Reference {
		if existing, err := s.repo.FindByReference(ctx, reference); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, reference)
		} else if err != nil && err != repository.ErrNotFound {
			return nil, err
		}
	}

	g.Reference = reference
	g.Description = req.Description
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("garments", "updated", g.ID)
	return g, nil
}

func (s *GarmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("garments", "deleted", id)
	return nil
}

func (s *GarmentService) Get(ctx context.Context, id uint) (*entity.Garment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GarmentService) List(ctx context.Context, page, pageSize int, keyword string) ([]entity.Garment, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, keyword)
}
