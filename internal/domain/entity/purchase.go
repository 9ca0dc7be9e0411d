package entity

import "time"

// Статусы заявки на покупку
const (
	PurchaseStatusPending  = "PENDING"
	PurchaseStatusApproved = "APPROVED"
	PurchaseStatusRejected = "REJECTED"
)

// Purchase представляет заявку пользователя на покупку услуги.
// Оплата здесь фиктивная: реальная платёжная интеграция вне рамок системы,
// администратор подтверждает или отклоняет заявку вручную.
type Purchase struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Reference    string  `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	UserID       uint    `gorm:"not null;index" json:"user_id"`
	OfferingID   uint    `gorm:"not null;index" json:"offering_id"`
	PeriodMonths int     `gorm:"not null;default:1" json:"period_months"`
	Amount       float64 `gorm:"not null" json:"amount"`
	Currency     string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	PaymentNote  string  `gorm:"size:255;not null;default:''" json:"payment_note"`
	Status       string  `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	InvoiceURL   string  `gorm:"size:1024;not null;default:''" json:"invoice_url,omitempty"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Offering *Offering `gorm:"foreignKey:OfferingID" json:"offering,omitempty"`

	DecidedAt *time.Time `gorm:"type:timestamp" json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName возвращает имя таблицы
func (Purchase) TableName() string {
	return "purchases"
}

// IsPending возвращает true, пока заявка ожидает решения администратора
func (p *Purchase) IsPending() bool {
	return p.Status == PurchaseStatusPending
}
