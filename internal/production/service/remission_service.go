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

// RemissionService records shipments of finished pieces against orders. A
// remission can never dispatch more than the order has actually finished:
// finished minus already dispatched is the ceiling, checked under the order
// row lock.
type RemissionService struct {
	remissionRepo *repository.RemissionRepository
	orderRepo     *repository.OrderRepository
	progress      *ProgressService
	db            *gorm.DB
}

func NewRemissionService(
	remissionRepo *repository.RemissionRepository,
	orderRepo *repository.OrderRepository,
	progress *ProgressService,
	db *gorm.DB,
) *RemissionService {
	return &RemissionService{
		remissionRepo: remissionRepo,
		orderRepo:     orderRepo,
		progress:      progress,
		db:            db,
	}
}

type CreateRemissionRequest struct {
	OrderID            uint   `json:"order_id" binding:"required"`
	DispatchedQuantity int    `json:"dispatched_quantity" binding:"required,gt=0"`
	DispatchDate       string `json:"dispatch_date" binding:"required"`
	Observations       string `json:"observations"`
}

func (s *RemissionService) Create(ctx context.Context, req CreateRemissionRequest) (*entity.Remission, error) {
	dispatchDate, err := time.Parse("2006-01-02", req.DispatchDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dispatch_date must be YYYY-MM-DD", ErrInvalidQuantity)
	}

	var created *entity.Remission
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, req.OrderID)
		if err != nil {
			return fmt.Errorf("order %d: %w", req.OrderID, err)
		}

		progress, err := s.progress.compute(tx, order)
		if err != nil {
			return err
		}
		dispatched, err := s.remissionRepo.SumDispatched(tx, order.ID)
		if err != nil {
			return err
		}

		available := progress.Completed - dispatched
		if req.DispatchedQuantity > available {
			return fmt.Errorf("%w: %d finished, %d already dispatched, %d available",
				ErrInsufficientCompletedStock, progress.Completed, dispatched, available)
		}

		created = &entity.Remission{
			OrderID:            order.ID,
			DispatchedQuantity: req.DispatchedQuantity,
			DispatchDate:       dispatchDate,
			Observations:       req.Observations,
			Active:             true,
		}
		return tx.Create(created).Error
	})
	if err != nil {
		return nil, err
	}

	sse.PublishEntityChanged("remissions", "created", created.ID)
	return s.remissionRepo.FindByID(ctx, created.ID)
}

// Dispatchable reports how many finished pieces of an order have not yet
// shipped.
func (s *RemissionService) Dispatchable(ctx context.Context, orderID uint) (int, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	progress, err := s.progress.compute(s.db.WithContext(ctx), order)
	if err != nil {
		return 0, err
	}
	dispatched, err := s.remissionRepo.SumDispatched(s.db.WithContext(ctx), orderID)
	if err != nil {
		return 0, err
	}
	return progress.Completed - dispatched, nil
}

func (s *RemissionService) Get(ctx context.Context, id uint) (*entity.Remission, error) {
	return s.remissionRepo.FindByID(ctx, id)
}

func (s *RemissionService) List(ctx context.Context, page, pageSize int, orderID uint) ([]entity.Remission, int64, error) {
	return s.remissionRepo.FindAll(ctx, page, pageSize, orderID)
}

// Delete voids a remission. The row stays for the audit trail but its
// quantity returns to the dispatchable pool.
func (s *RemissionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.remissionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.remissionRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("remissions", "deleted", id)
	return nil
}
