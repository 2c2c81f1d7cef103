package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/telaris/confetrack/internal/production/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type OrderListParams struct {
	GarmentID uint
	Keyword   string
	Page      int
	PageSize  int
}

func (r *OrderRepository) FindAll(ctx context.Context, params OrderListParams) ([]entity.ProductionOrder, int64, error) {
	var items []entity.ProductionOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ProductionOrder{}).Where("active = ?", true)
	if params.GarmentID != 0 {
		query = query.Where("garment_id = ?", params.GarmentID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("order_number ILIKE ? OR color ILIKE ?", kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Garment").Order("created_at DESC").
		Offset(offset).Limit(params.PageSize).Find(&items).Error
	return items, total, err
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.db.WithContext(ctx).Preload("Garment").
		Where("id = ? AND active = ?", id, true).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// LockByID loads the order row FOR UPDATE inside tx. Capacity and dispatch
// checks run under this lock so two writers cannot both pass the same check.
func (r *OrderRepository) LockByID(tx *gorm.DB, id uint) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND active = ?", id, true).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *entity.ProductionOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.ProductionOrder{}).
		Where("id = ?", id).Update("active", false).Error
}

// Advisory lock class for order number generation.
const orderNumberLockClass = 2847

// GenerateOrderNumber produces ORD-YYYY-NNN, sequential within the year. It
// takes a per-year advisory lock on tx so two concurrent creates cannot mint
// the same number; the lock releases when the transaction ends.
func (r *OrderRepository) GenerateOrderNumber(tx *gorm.DB, year int) (string, error) {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", orderNumberLockClass, year).Error; err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("ORD-%d", year)
	var count int64
	err := tx.Model(&entity.ProductionOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", prefix, count+1), nil
}

// DB exposes the underlying handle for transactions.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}
