package repository

import (
	"context"
	"errors"

	"github.com/telaris/confetrack/internal/production/entity"
	"gorm.io/gorm"
)

type GarmentRepository struct {
	db *gorm.DB
}

func NewGarmentRepository(db *gorm.DB) *GarmentRepository {
	return &GarmentRepository{db: db}
}

func (r *GarmentRepository) FindAll(ctx context.Context, page, pageSize int, keyword string) ([]entity.Garment, int64, error) {
	var items []entity.Garment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Garment{}).Where("active = ?", true)
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("reference ILIKE ? OR description ILIKE ?", kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *GarmentRepository) FindByID(ctx context.Context, id uint) (*entity.Garment, error) {
	var g entity.Garment
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindByReference looks up a garment by its normalized reference code,
// including inactive ones so a soft-deleted reference cannot be reused.
func (r *GarmentRepository) FindByReference(ctx context.Context, reference string) (*entity.Garment, error) {
	var g entity.Garment
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GarmentRepository) Create(ctx context.Context, g *entity.Garment) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GarmentRepository) Update(ctx context.Context, g *entity.Garment) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GarmentRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Garment{}).
		Where("id = ?", id).Update("active", false).Error
}
