package service

import (
	"context"
	"math"

	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"gorm.io/gorm"
)

// ProgressService derives how far a production order has advanced. An order
// is only as done as its slowest operation: the completed count is the
// minimum of the completed pieces across every operation the garment
// requires, counting operations with no deliveries as zero.
type ProgressService struct {
	db             *gorm.DB
	orderRepo      *repository.OrderRepository
	operationRepo  *repository.OperationRepository
	assignmentRepo *repository.AssignmentRepository
}

func NewProgressService(
	db *gorm.DB,
	orderRepo *repository.OrderRepository,
	operationRepo *repository.OperationRepository,
	assignmentRepo *repository.AssignmentRepository,
) *ProgressService {
	return &ProgressService{
		db:             db,
		orderRepo:      orderRepo,
		operationRepo:  operationRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *ProgressService) ForOrder(ctx context.Context, orderID uint) (*entity.OrderProgress, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.compute(s.db.WithContext(ctx), order)
}

// compute reads through the given handle so that a caller holding a row
// lock inside a transaction sees a consistent completed count.
func (s *ProgressService) compute(tx *gorm.DB, order *entity.ProductionOrder) (*entity.OrderProgress, error) {
	ops, err := s.operationRepo.FindByGarment(tx, order.GarmentID)
	if err != nil {
		return nil, err
	}

	progress := &entity.OrderProgress{
		OrderID:      order.ID,
		Total:        order.TotalQuantity,
		PerOperation: make([]entity.OperationSum, 0, len(ops)),
	}
	// A garment with no operations defined cannot advance.
	if len(ops) == 0 {
		return progress, nil
	}

	completedByOp, err := s.assignmentRepo.CompletedByOperation(tx, order.ID)
	if err != nil {
		return nil, err
	}

	minCompleted := math.MaxInt
	for _, op := range ops {
		done := completedByOp[op.ID]
		progress.PerOperation = append(progress.PerOperation, entity.OperationSum{
			OperationID:   op.ID,
			OperationName: op.Name,
			Completed:     done,
		})
		if done < minCompleted {
			minCompleted = done
		}
	}

	progress.Completed = minCompleted
	if order.TotalQuantity > 0 {
		progress.Percentage = int(math.Round(float64(minCompleted) / float64(order.TotalQuantity) * 100))
	}
	return progress, nil
}
