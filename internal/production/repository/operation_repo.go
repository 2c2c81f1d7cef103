package repository

import (
	"context"
	"errors"

	"github.com/telaris/confetrack/internal/production/entity"
	"gorm.io/gorm"
)

type OperationRepository struct {
	db *gorm.DB
}

func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) FindAll(ctx context.Context, page, pageSize int, garmentID uint) ([]entity.Operation, int64, error) {
	var items []entity.Operation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Operation{}).Where("active = ?", true)
	if garmentID != 0 {
		query = query.Where("garment_id = ?", garmentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Garment").Order("created_at DESC").
		Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

// FindByGarment returns every active operation of a garment. This is the
// "required operations" set used by progress computation; it takes the
// handle so callers inside a transaction read on the same connection.
func (r *OperationRepository) FindByGarment(tx *gorm.DB, garmentID uint) ([]entity.Operation, error) {
	var ops []entity.Operation
	err := tx.Model(&entity.Operation{}).
		Where("garment_id = ? AND active = ?", garmentID, true).
		Order("id").Find(&ops).Error
	return ops, err
}

func (r *OperationRepository) FindByID(ctx context.Context, id uint) (*entity.Operation, error) {
	var op entity.Operation
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&op).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r *OperationRepository) Create(ctx context.Context, op *entity.Operation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *OperationRepository) Update(ctx context.Context, op *entity.Operation) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *OperationRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Operation{}).
		Where("id = ?", id).Update("active", false).Error
}
