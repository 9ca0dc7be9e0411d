package entity

import "time"

// Статусы заявки партнёра
const (
	PartnerStatusPendingApproval = "PENDING_APPROVAL"
	PartnerStatusApproved        = "APPROVED"
	PartnerStatusRejected        = "REJECTED"
)

// Partner представляет компанию-партнёра (реселлера)
type Partner struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CompanyName  string `gorm:"size:150;not null" json:"company_name"`
	ContactName  string `gorm:"size:100;not null" json:"contact_name"`
	Email        string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone        string `gorm:"size:30;not null;default:''" json:"phone"`
	Website      string `gorm:"size:255;not null;default:''" json:"website"`
	Address      string `gorm:"size:255;not null;default:''" json:"address"`
	City         string `gorm:"size:100;not null;default:''" json:"city"`
	Country      string `gorm:"size:100;not null;default:''" json:"country"`
	TaxNumber    string `gorm:"size:50;not null;default:''" json:"tax_number"`
	Status       string `gorm:"size:30;not null;default:'PENDING_APPROVAL';index" json:"status"`
	AgreementURL string `gorm:"size:1024;not null;default:''" json:"agreement_url,omitempty"`

	EmailVerifiedAt *time.Time `gorm:"type:timestamp" json:"email_verified_at,omitempty"`
	ApprovedAt      *time.Time `gorm:"type:timestamp" json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Partner) TableName() string {
	return "partners"
}

// IsPending возвращает true, пока заявка не рассмотрена администратором
func (p *Partner) IsPending() bool {
	return p.Status == PartnerStatusPendingApproval
}
