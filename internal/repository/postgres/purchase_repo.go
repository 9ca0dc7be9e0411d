package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// PurchaseRepo реализует repository.PurchaseRepository
type PurchaseRepo struct {
	db *gorm.DB
}

// NewPurchaseRepo создает новый репозиторий заявок на покупку
func NewPurchaseRepo(db *gorm.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// Create создает заявку на покупку
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	return r.db.Create(purchase).Error
}

// GetByID возвращает заявку по ID вместе с пользователем и услугой
func (r *PurchaseRepo) GetByID(id uint) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.Preload("User").Preload("Offering").First(&purchase, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByReference возвращает заявку по уникальному референсу
func (r *PurchaseRepo) GetByReference(reference string) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.Preload("User").Preload("Offering").
		Where("reference = ?", reference).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// Update обновляет заявку
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	return r.db.Save(purchase).Error
}

// UpdateStatus переводит заявку fromStatus -> toStatus условным UPDATE.
// Если заявка уже рассмотрена (WHERE не совпал), возвращает ErrConflict.
func (r *PurchaseRepo) UpdateStatus(purchaseID uint, fromStatus, toStatus string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()

	res := r.db.Model(&entity.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ListByUser возвращает заявки пользователя с пагинацией
func (r *PurchaseRepo) ListByUser(userID uint, limit, offset int) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.Model(&entity.Purchase{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Offering").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&purchases).Error
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// List возвращает заявки (опционально по статусу) для админки
func (r *PurchaseRepo) List(status string, limit, offset int) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	countQuery := r.db.Model(&entity.Purchase{})
	listQuery := r.db.Preload("User").Preload("Offering")
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
		listQuery = listQuery.Where("status = ?", status)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := listQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&purchases).Error
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}
