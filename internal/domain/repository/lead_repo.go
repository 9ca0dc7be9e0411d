package repository

import (
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
)

// LeadRepository определяет методы для работы с обращениями с сайта
type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetByID(id uint) (*entity.Lead, error)
	MarkHandled(leadID uint) error
	List(kind string, onlyUnhandled bool, limit, offset int) ([]entity.Lead, int64, error)
}
