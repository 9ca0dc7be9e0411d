package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// OtpChallengeRepo реализует repository.OtpChallengeRepository
type OtpChallengeRepo struct {
	db *gorm.DB
}

func NewOtpChallengeRepo(db *gorm.DB) *OtpChallengeRepo {
	return &OtpChallengeRepo{db: db}
}

// Create stores a new challenge and supersedes every prior active one for the
// same email inside a single transaction, so the invariant "at most one live
// challenge per email" also holds under concurrent requests (last writer wins).
// Проигравший гонку за частичный уникальный индекс получает ErrConflict.
func (r *OtpChallengeRepo) Create(challenge *entity.OtpChallenge) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.OtpChallenge{}).
			Where("email = ? AND consumed_at IS NULL AND superseded = false", challenge.Email).
			Update("superseded", true).Error
		if err != nil {
			return fmt.Errorf("failed to supersede previous challenges: %w", err)
		}
		if err := tx.Create(challenge).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrConflict
			}
			return err
		}
		return nil
	})
}

// GetActiveByEmail returns the single unconsumed, unsuperseded challenge for
// the email, expired or not: the caller distinguishes Expired from NotFound.
func (r *OtpChallengeRepo) GetActiveByEmail(email string) (*entity.OtpChallenge, error) {
	var challenge entity.OtpChallenge
	err := r.db.
		Where("email = ? AND consumed_at IS NULL AND superseded = false", email).
		Order("created_at DESC").
		First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active otp challenge: %w", err)
	}
	return &challenge, nil
}

// MarkConsumed is a conditional update: the WHERE clause only matches while the
// challenge is unconsumed and not superseded, so of two concurrent verifies
// exactly one wins, and a verify that loaded the challenge before a newer code
// was issued loses to it.
func (r *OtpChallengeRepo) MarkConsumed(id uint, at time.Time) error {
	res := r.db.Model(&entity.OtpChallenge{}).
		Where("id = ? AND consumed_at IS NULL AND superseded = false", id).
		Update("consumed_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *OtpChallengeRepo) IncrementAttempts(id uint) error {
	return r.db.Model(&entity.OtpChallenge{}).
		Where("id = ?", id).
		Update("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

func (r *OtpChallengeRepo) LatestConsumedByEmail(email string) (*entity.OtpChallenge, error) {
	var challenge entity.OtpChallenge
	err := r.db.
		Where("email = ? AND consumed_at IS NOT NULL", email).
		Order("consumed_at DESC").
		First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get consumed otp challenge: %w", err)
	}
	return &challenge, nil
}

func (r *OtpChallengeRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", cutoff).Delete(&entity.OtpChallenge{})
	return res.RowsAffected, res.Error
}
