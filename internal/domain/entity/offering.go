package entity

import "time"

// Offering представляет позицию каталога: хостинг-план или облачный ERP-пакет
type Offering struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Slug         string    `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Category     string    `gorm:"size:30;not null;index" json:"category"` // "hosting" | "erp_cloud"
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	MonthlyPrice float64   `gorm:"not null;default:0" json:"monthly_price"`
	Currency     string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Active       bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName возвращает имя таблицы
func (Offering) TableName() string {
	return "offerings"
}

// IsHosting проверяет, относится ли позиция к хостингу
func (o *Offering) IsHosting() bool {
	return o.Category == "hosting"
}

// IsERPCloud проверяет, относится ли позиция к облачному ERP
func (o *Offering) IsERPCloud() bool {
	return o.Category == "erp_cloud"
}
