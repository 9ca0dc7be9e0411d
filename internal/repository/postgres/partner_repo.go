package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// PartnerRepo реализует repository.PartnerRepository
type PartnerRepo struct {
	db *gorm.DB
}

// NewPartnerRepo создает новый репозиторий партнёров
func NewPartnerRepo(db *gorm.DB) *PartnerRepo {
	return &PartnerRepo{db: db}
}

// Create создает заявку партнёра; гонка за email даёт apperrors.ErrConflict
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	err := r.db.Create(partner).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает партнёра по ID
func (r *PartnerRepo) GetByID(id uint) (*entity.Partner, error) {
	var partner entity.Partner
	err := r.db.First(&partner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// GetByEmail возвращает партнёра по email
func (r *PartnerRepo) GetByEmail(email string) (*entity.Partner, error) {
	var partner entity.Partner
	err := r.db.Where("email = ?", email).First(&partner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// Update обновляет данные партнёра
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	return r.db.Save(partner).Error
}

// UpdateStatus переводит заявку fromStatus -> toStatus условным UPDATE.
// Если заявка уже рассмотрена (WHERE не совпал), возвращает ErrConflict.
func (r *PartnerRepo) UpdateStatus(partnerID uint, fromStatus, toStatus string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()

	res := r.db.Model(&entity.Partner{}).
		Where("id = ? AND status = ?", partnerID, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// List возвращает партнёров с фильтром по статусу и пагинацией
func (r *PartnerRepo) List(status string, limit, offset int) ([]entity.Partner, int64, error) {
	var partners []entity.Partner
	var total int64

	query := r.db.Model(&entity.Partner{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&partners).Error
	if err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}
