package repository

import (
	"context"
	"errors"

	"github.com/telaris/confetrack/internal/production/entity"
	"gorm.io/gorm"
)

type RemissionRepository struct {
	db *gorm.DB
}

func NewRemissionRepository(db *gorm.DB) *RemissionRepository {
	return &RemissionRepository{db: db}
}

func (r *RemissionRepository) FindAll(ctx context.Context, page, pageSize int, orderID uint) ([]entity.Remission, int64, error) {
	var items []entity.Remission
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Remission{}).Where("active = ?", true)
	if orderID != 0 {
		query = query.Where("order_id = ?", orderID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Order").Order("dispatch_date DESC, id DESC").
		Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *RemissionRepository) FindByID(ctx context.Context, id uint) (*entity.Remission, error) {
	var rem entity.Remission
	err := r.db.WithContext(ctx).Preload("Order").
		Where("id = ? AND active = ?", id, true).First(&rem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rem, nil
}

func (r *RemissionRepository) Create(ctx context.Context, rem *entity.Remission) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *RemissionRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Remission{}).
		Where("id = ?", id).Update("active", false).Error
}

// SumDispatched totals dispatched quantity over an order's active remissions.
// Runs on the given handle so dispatch checks can hold the order lock.
func (r *RemissionRepository) SumDispatched(tx *gorm.DB, orderID uint) (int, error) {
	var result struct{ Total int }
	err := tx.Raw(`
		SELECT COALESCE(SUM(dispatched_quantity), 0) AS total
		FROM remissions
		WHERE order_id = ? AND active = true
	`, orderID).Scan(&result).Error
	return result.Total, err
}

// DB exposes the underlying handle for transactions.
func (r *RemissionRepository) DB() *gorm.DB {
	return r.db
}
