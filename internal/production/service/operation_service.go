package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/sse"
)

type OperationService struct {
	repo        *repository.OperationRepository
	garmentRepo *repository.GarmentRepository
}

func NewOperationService(repo *repository.OperationRepository, garmentRepo *repository.GarmentRepository) *OperationService {
	return &OperationService{repo: repo, garmentRepo: garmentRepo}
}

type OperationRequest struct {
	Name      string `json:"name" binding:"required"`
	Cost      string `json:"cost" binding:"required"`
	GarmentID uint   `json:"garment_id" binding:"required"`
}

// parseCost turns the decimal string from the request into money exactly
// once. Negative rates are rejected; zero is allowed for unpaid rework steps.
func parseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cost %q is not a valid decimal", ErrInvalidQuantity, raw)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cost must not be negative", ErrInvalidQuantity)
	}
	return cost, nil
}

func (s *OperationService) Create(ctx context.Context, req OperationRequest) (*entity.Operation, error) {
	if _, err := s.garmentRepo.FindByID(ctx, req.GarmentID); err != nil {
		return nil, fmt.Errorf("garment %d: %w", req.GarmentID, err)
	}
	cost, err := parseCost(req.Cost)
	if err != nil {
		return nil, err
	}

	op := &entity.Operation{
		Name:      req.Name,
		Cost:      cost,
		GarmentID: req.GarmentID,
		Active:    true,
	}
	if err := s.repo.Create(ctx, op); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("operations", "created", op.ID)
	return op, nil
}

// Update changes the name or rate. The garment binding is immutable: moving
// an operation between garments would silently rewrite order progress.
func (s *OperationService) Update(ctx context.Context, id uint, req OperationRequest) (*entity.Operation, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.GarmentID != op.GarmentID {
		return nil, fmt.Errorf("%w: operation cannot change garment", ErrInvalidQuantity)
	}
	cost, err := parseCost(req.Cost)
	if err != nil {
		return nil, err
	}

	op.Name = req.Name
	op.Cost = cost
	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("operations", "updated", op.ID)
	return op, nil
}

func (s *OperationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("operations", "deleted", id)
	return nil
}

func (s *OperationService) Get(ctx context.Context, id uint) (*entity.Operation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OperationService) List(ctx context.Context, page, pageSize int, garmentID uint) ([]entity.Operation, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, garmentID)
}
