package repository

import (
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
)

// OfferingRepository определяет методы для работы с каталогом услуг
type OfferingRepository interface {
	Create(offering *entity.Offering) error
	GetByID(id uint) (*entity.Offering, error)
	GetBySlug(slug string) (*entity.Offering, error)
	Update(offering *entity.Offering) error
	// ListActive возвращает только активные позиции каталога (публичная витрина)
	ListActive(category string) ([]entity.Offering, error)
	// ListAll возвращает все позиции, включая выключенные (админка)
	ListAll(limit, offset int) ([]entity.Offering, int64, error)
}
