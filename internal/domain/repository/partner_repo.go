package repository

import (
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
)

// PartnerRepository определяет методы для работы с партнёрами
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id uint) (*entity.Partner, error)
	GetByEmail(email string) (*entity.Partner, error)
	Update(partner *entity.Partner) error
	UpdateStatus(partnerID uint, fromStatus, toStatus string, updates map[string]interface{}) error
	List(status string, limit, offset int) ([]entity.Partner, int64, error)
}
