package entity

import "time"

// OtpChallenge stores a one-time registration code issued for an email address.
// The code is kept in plaintext because it has to be surfaced back to the caller
// when email delivery fails (see RegistrationService).
type OtpChallenge struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:100;not null;index" json:"email"`
	Code         string     `gorm:"size:10;not null" json:"-"`
	Audience     string     `gorm:"size:20;not null;default:'user'" json:"audience"` // "user" | "partner"
	IssuedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"issued_at"`
	ExpiresAt    time.Time  `gorm:"not null;index" json:"expires_at"`
	ConsumedAt   *time.Time `gorm:"index" json:"consumed_at,omitempty"`
	Superseded   bool       `gorm:"not null;default:false" json:"superseded"`
	AttemptCount int        `gorm:"not null;default:0" json:"attempt_count"`
	MaxAttempts  int        `gorm:"not null;default:5" json:"max_attempts"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OtpChallenge) TableName() string {
	return "otp_challenges"
}

func (o *OtpChallenge) IsConsumed() bool {
	return o.ConsumedAt != nil
}

func (o *OtpChallenge) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// IsActive reports whether the challenge can still be verified at the given moment.
func (o *OtpChallenge) IsActive(now time.Time) bool {
	return !o.Superseded && !o.IsConsumed() && !o.IsExpired(now)
}
