package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/sse"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentService owns the assignment lifecycle: handing work out,
// reporting it delivered (completely or partially), undoing deliveries, and
// deleting records. Every capacity-sensitive step runs in one transaction
// holding the order row lock, so concurrent writers serialize on the order.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	orderRepo      *repository.OrderRepository
	operationRepo  *repository.OperationRepository
	employeeRepo   *repository.EmployeeRepository
	db             *gorm.DB
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	orderRepo *repository.OrderRepository,
	operationRepo *repository.OperationRepository,
	employeeRepo *repository.EmployeeRepository,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		orderRepo:      orderRepo,
		operationRepo:  operationRepo,
		employeeRepo:   employeeRepo,
		db:             db,
	}
}

type CreateAssignmentRequest struct {
	EmployeeID  uint `json:"employee_id" binding:"required"`
	OrderID     uint `json:"order_id" binding:"required"`
	OperationID uint `json:"operation_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,gt=0"`
}

// Create hands quantity pieces of an operation to an employee, bounded by
// what the order still has unassigned for that operation.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*entity.Assignment, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("employee %d: %w", req.EmployeeID, err)
	}

	operation, err := s.operationRepo.FindByID(ctx, req.OperationID)
	if err != nil {
		return nil, fmt.Errorf("operation %d: %w", req.OperationID, err)
	}

	var created *entity.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, req.OrderID)
		if err != nil {
			return fmt.Errorf("order %d: %w", req.OrderID, err)
		}
		if operation.GarmentID != order.GarmentID {
			return fmt.Errorf("%w: operation %q does not belong to the order's garment", ErrInvalidQuantity, operation.Name)
		}

		assigned, err := s.assignmentRepo.SumAssigned(tx, order.ID, operation.ID)
		if err != nil {
			return err
		}

		available := order.TotalQuantity - assigned
		if req.Quantity > available {
			return fmt.Errorf("%w: only %d available, %d of %d already assigned for %q",
				ErrCapacityExceeded, available, assigned, order.TotalQuantity, operation.Name)
		}

		created = &entity.Assignment{
			EmployeeID:   employee.ID,
			GarmentID:    order.GarmentID,
			OperationID:  operation.ID,
			OrderID:      order.ID,
			Quantity:     req.Quantity,
			Size:         order.Size,
			Color:        order.Color,
			AssignedDate: today(),
			Completed:    false,
			Amount:       operation.Cost.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		return tx.Create(created).Error
	})
	if err != nil {
		return nil, err
	}

	sse.PublishEntityChanged("assignments", "created", created.ID)
	return s.assignmentRepo.FindByID(ctx, created.ID)
}

// Complete reports delivered pieces against an assignment. Delivering fewer
// pieces than assigned splits the row: the original shrinks to the delivered
// quantity and completes, a new pending assignment holds the remainder. Both
// writes share one transaction so quantity is conserved even on a crash.
func (s *AssignmentService) Complete(ctx context.Context, id uint, delivered int) (*entity.Assignment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssignment(tx, id)
		if err != nil {
			return err
		}
		if a.Completed {
			return fmt.Errorf("%w: assignment %d is already completed", ErrInvalidQuantity, a.ID)
		}
		if delivered <= 0 || delivered > a.Quantity {
			return fmt.Errorf("%w: delivered %d, assignment holds %d", ErrInvalidQuantity, delivered, a.Quantity)
		}

		unitCost, err := s.unitCost(tx, a.OperationID)
		if err != nil {
			return err
		}

		now := today()
		if delivered == a.Quantity {
			a.Completed = true
			a.CompletedDate = &now
			return tx.Save(a).Error
		}

		// Split: shrink the original to the delivered part and complete it.
		remainder := a.Quantity - delivered
		a.Quantity = delivered
		a.Completed = true
		a.CompletedDate = &now
		a.Amount = unitCost.Mul(decimal.NewFromInt(int64(delivered)))
		if err := tx.Save(a).Error; err != nil {
			return err
		}

		rest := &entity.Assignment{
			EmployeeID:   a.EmployeeID,
			GarmentID:    a.GarmentID,
			OperationID:  a.OperationID,
			OrderID:      a.OrderID,
			Quantity:     remainder,
			Size:         a.Size,
			Color:        a.Color,
			AssignedDate: a.AssignedDate,
			Completed:    false,
			Amount:       unitCost.Mul(decimal.NewFromInt(int64(remainder))),
		}
		return tx.Create(rest).Error
	})
	if err != nil {
		return nil, err
	}

	sse.PublishEntityChanged("assignments", "completed", id)
	return s.assignmentRepo.FindByID(ctx, id)
}

// Revert is the inverse of Complete. A full revert clears the completion; a
// partial revert keeps the original completed at the reduced quantity and
// moves the reverted pieces to a new pending assignment.
func (s *AssignmentService) Revert(ctx context.Context, id uint, quantity int) (*entity.Assignment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssignment(tx, id)
		if err != nil {
			return err
		}
		if !a.Completed {
			return fmt.Errorf("%w: assignment %d is not completed", ErrInvalidQuantity, a.ID)
		}
		if quantity <= 0 || quantity > a.Quantity {
			return fmt.Errorf("%w: reverting %d, assignment holds %d", ErrInvalidQuantity, quantity, a.Quantity)
		}

		if quantity == a.Quantity {
			a.Completed = false
			a.CompletedDate = nil
			return tx.Save(a).Error
		}

		unitCost, err := s.unitCost(tx, a.OperationID)
		if err != nil {
			return err
		}

		kept := a.Quantity - quantity
		a.Quantity = kept
		a.Amount = unitCost.Mul(decimal.NewFromInt(int64(kept)))
		if err := tx.Save(a).Error; err != nil {
			return err
		}

		reverted := &entity.Assignment{
			EmployeeID:   a.EmployeeID,
			GarmentID:    a.GarmentID,
			OperationID:  a.OperationID,
			OrderID:      a.OrderID,
			Quantity:     quantity,
			Size:         a.Size,
			Color:        a.Color,
			AssignedDate: a.AssignedDate,
			Completed:    false,
			Amount:       unitCost.Mul(decimal.NewFromInt(int64(quantity))),
		}
		return tx.Create(reverted).Error
	})
	if err != nil {
		return nil, err
	}

	sse.PublishEntityChanged("assignments", "reverted", id)
	return s.assignmentRepo.FindByID(ctx, id)
}

// Delete removes the row for good. Unlike the master entities, assignment
// history is physically removable.
func (s *AssignmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.assignmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("assignments", "deleted", id)
	return nil
}

func (s *AssignmentService) Get(ctx context.Context, id uint) (*entity.Assignment, error) {
	return s.assignmentRepo.FindByID(ctx, id)
}

func (s *AssignmentService) List(ctx context.Context, params repository.AssignmentListParams) ([]entity.Assignment, int64, error) {
	return s.assignmentRepo.FindAll(ctx, params)
}

// unitCost reads the operation's piece rate inside the transaction. The
// active filter is deliberately skipped: a retired operation still prices
// the splits of assignments created while it was active.
func (s *AssignmentService) unitCost(tx *gorm.DB, operationID uint) (decimal.Decimal, error) {
	var op entity.Operation
	if err := tx.First(&op, operationID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("operation %d: %w", operationID, repository.ErrNotFound)
	}
	return op.Cost, nil
}

func lockAssignment(tx *gorm.DB, id uint) (*entity.Assignment, error) {
	var a entity.Assignment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("assignment %d: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

// today returns the current date with the time part dropped, matching the
// date columns assignments are stored with.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
