package repository

import (
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
)

// PurchaseRepository определяет методы для работы с заявками на покупку
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id uint) (*entity.Purchase, error)
	GetByReference(reference string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	// UpdateStatus переводит заявку из PENDING в APPROVED/REJECTED атомарно;
	// возвращает apperrors.ErrConflict, если заявка уже была рассмотрена.
	UpdateStatus(purchaseID uint, fromStatus, toStatus string, updates map[string]interface{}) error
	ListByUser(userID uint, limit, offset int) ([]entity.Purchase, int64, error)
	List(status string, limit, offset int) ([]entity.Purchase, int64, error)
}
