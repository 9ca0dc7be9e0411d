package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// LeadRepo реализует repository.LeadRepository
type LeadRepo struct {
	db *gorm.DB
}

// NewLeadRepo создает новый репозиторий обращений
func NewLeadRepo(db *gorm.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

// Create создает обращение
func (r *LeadRepo) Create(lead *entity.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID возвращает обращение по ID
func (r *LeadRepo) GetByID(id uint) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.First(&lead, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// MarkHandled отмечает обращение обработанным
func (r *LeadRepo) MarkHandled(leadID uint) error {
	res := r.db.Model(&entity.Lead{}).Where("id = ?", leadID).Update("handled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает обращения с фильтрами и пагинацией
func (r *LeadRepo) List(kind string, onlyUnhandled bool, limit, offset int) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.Model(&entity.Lead{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if onlyUnhandled {
		query = query.Where("handled = false")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}
