package service

import (
	"context"
	"fmt"
	"time"

	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/sse"
	"gorm.io/gorm"
)

type OrderService struct {
	repo        *repository.OrderRepository
	garmentRepo *repository.GarmentRepository
}

func NewOrderService(repo *repository.OrderRepository, garmentRepo *repository.GarmentRepository) *OrderService {
	return &OrderService{repo: repo, garmentRepo: garmentRepo}
}

type CreateOrderRequest struct {
	GarmentID     uint   `json:"garment_id" binding:"required"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	TotalQuantity int    `json:"total_quantity" binding:"required,gt=0"`
	EntryDate     string `json:"entry_date" binding:"required"`
}

type UpdateOrderRequest struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*entity.ProductionOrder, error) {
	if _, err := s.garmentRepo.FindByID(ctx, req.GarmentID); err != nil {
		return nil, fmt.Errorf("garment %d: %w", req.GarmentID, err)
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry_date must be YYYY-MM-DD", ErrInvalidQuantity)
	}

	o := &entity.ProductionOrder{
		GarmentID:     req.GarmentID,
		Color:         req.Color,
		Size:          req.Size,
		TotalQuantity: req.TotalQuantity,
		EntryDate:     entryDate,
		Active:        true,
	}
	// Number and insert in one transaction so concurrent creates cannot
	// mint the same ORD-YYYY-NNN.
	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderNumber, err := s.repo.GenerateOrderNumber(tx, entryDate.Year())
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}
		o.OrderNumber = orderNumber
		return tx.Create(o).Error
	})
	if err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("orders", "created", o.ID)
	return o, nil
}

// Update touches the descriptive fields only. Quantity, garment, and entry
// date are fixed at creation: assignments and progress already depend on them.
func (s *OrderService) Update(ctx context.Context, id uint, req UpdateOrderRequest) (*entity.ProductionOrder, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Color = req.Color
	o.Size = req.Size
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("orders", "updated", o.ID)
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("orders", "deleted", id)
	return nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*entity.ProductionOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.ProductionOrder, int64, error) {
	return s.repo.FindAll(ctx, params)
}
