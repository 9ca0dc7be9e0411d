package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// OfferingRepo реализует repository.OfferingRepository
type OfferingRepo struct {
	db *gorm.DB
}

// NewOfferingRepo создает новый репозиторий каталога
func NewOfferingRepo(db *gorm.DB) *OfferingRepo {
	return &OfferingRepo{db: db}
}

// Create создает позицию каталога
func (r *OfferingRepo) Create(offering *entity.Offering) error {
	err := r.db.Create(offering).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает позицию каталога по ID
func (r *OfferingRepo) GetByID(id uint) (*entity.Offering, error) {
	var offering entity.Offering
	err := r.db.First(&offering, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &offering, nil
}

// GetBySlug возвращает позицию каталога по slug
func (r *OfferingRepo) GetBySlug(slug string) (*entity.Offering, error) {
	var offering entity.Offering
	err := r.db.Where("slug = ?", slug).First(&offering).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &offering, nil
}

// Update обновляет позицию каталога
func (r *OfferingRepo) Update(offering *entity.Offering) error {
	return r.db.Save(offering).Error
}

// ListActive возвращает активные позиции каталога для публичной витрины
func (r *OfferingRepo) ListActive(category string) ([]entity.Offering, error) {
	var offerings []entity.Offering
	query := r.db.Where("active = true")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("monthly_price ASC").Find(&offerings).Error
	if err != nil {
		return nil, err
	}
	return offerings, nil
}

// ListAll возвращает все позиции каталога для админки
func (r *OfferingRepo) ListAll(limit, offset int) ([]entity.Offering, int64, error) {
	var offerings []entity.Offering
	var total int64

	if err := r.db.Model(&entity.Offering{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&offerings).Error
	if err != nil {
		return nil, 0, err
	}
	return offerings, total, nil
}
