package entity

import "time"

// Типы обращений с публичного сайта
const (
	LeadKindDemo    = "demo"
	LeadKindContact = "contact"
)

// Lead представляет обращение с публичного сайта: запрос демо или контактная форма
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:20;not null;index" json:"kind"` // "demo" | "contact"
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Phone     string    `gorm:"size:30;not null;default:''" json:"phone"`
	Company   string    `gorm:"size:150;not null;default:''" json:"company"`
	Message   string    `gorm:"type:text;not null;default:''" json:"message"`
	Handled   bool      `gorm:"not null;default:false;index" json:"handled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName возвращает имя таблицы
func (Lead) TableName() string {
	return "leads"
}
