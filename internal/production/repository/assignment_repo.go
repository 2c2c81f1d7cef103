package repository

import (
	"context"
	"errors"

	"github.com/telaris/confetrack/internal/production/entity"
	"gorm.io/gorm"
)

// MaxAssignmentRows caps the unfiltered assignment listing, which is read
// newest-first in full (assignments have no active flag).
const MaxAssignmentRows = 1000

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type AssignmentListParams struct {
	EmployeeID  uint
	OrderID     uint
	OperationID uint
	Completed   *bool
	Page        int
	PageSize    int
}

func (r *AssignmentRepository) FindAll(ctx context.Context, params AssignmentListParams) ([]entity.Assignment, int64, error) {
	var items []entity.Assignment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Assignment{})
	if params.EmployeeID != 0 {
		query = query.Where("employee_id = ?", params.EmployeeID)
	}
	if params.OrderID != 0 {
		query = query.Where("order_id = ?", params.OrderID)
	}
	if params.OperationID != 0 {
		query = query.Where("operation_id = ?", params.OperationID)
	}
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := params.PageSize
	if limit <= 0 || limit > MaxAssignmentRows {
		limit = MaxAssignmentRows
	}
	offset := 0
	if params.Page > 1 {
		offset = (params.Page - 1) * limit
	}

	err := query.
		Preload("Employee").
		Preload("Operation").
		Preload("Order").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uint) (*entity.Assignment, error) {
	var a entity.Assignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Operation").
		Preload("Order").
		Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a *entity.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) Update(ctx context.Context, a *entity.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete is a hard delete. Assignment rows are physically removable.
func (r *AssignmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Assignment{}, id).Error
}

// SumAssigned totals quantity over (order, operation) pairs, completed or
// not. Runs on whatever handle it is given so callers can keep it inside a
// locking transaction.
func (r *AssignmentRepository) SumAssigned(tx *gorm.DB, orderID, operationID uint) (int, error) {
	var result struct{ Total int }
	err := tx.Raw(`
		SELECT COALESCE(SUM(quantity), 0) AS total
		FROM assignments
		WHERE order_id = ? AND operation_id = ?
	`, orderID, operationID).Scan(&result).Error
	return result.Total, err
}

// CompletedByOperation returns completed quantity per operation for an order.
// Operations with no completed assignments are absent from the map. Takes
// the handle so a transactional caller reads its own uncommitted writes.
func (r *AssignmentRepository) CompletedByOperation(tx *gorm.DB, orderID uint) (map[uint]int, error) {
	var rows []struct {
		OperationID uint
		Total       int
	}
	err := tx.Raw(`
		SELECT operation_id, COALESCE(SUM(quantity), 0) AS total
		FROM assignments
		WHERE order_id = ? AND completed = true
		GROUP BY operation_id
	`, orderID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[uint]int, len(rows))
	for _, row := range rows {
		sums[row.OperationID] = row.Total
	}
	return sums, nil
}

// DB exposes the underlying handle for transactions.
func (r *AssignmentRepository) DB() *gorm.DB {
	return r.db
}
