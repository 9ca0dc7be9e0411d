package repository

import (
	"time"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
)

// OtpChallengeRepository persists one-time registration codes.
//
// Create must mark every prior active challenge for the same email superseded
// in the same operation, so that at any moment at most one challenge per email
// can verify (last writer wins).
type OtpChallengeRepository interface {
	Create(challenge *entity.OtpChallenge) error
	GetActiveByEmail(email string) (*entity.OtpChallenge, error)
	// MarkConsumed consumes the challenge only if it is still unconsumed;
	// returns apperrors.ErrConflict when another request got there first.
	MarkConsumed(id uint, at time.Time) error
	IncrementAttempts(id uint) error
	// LatestConsumedByEmail returns the most recently consumed challenge for
	// the email, used as proof of ownership between verify and submit.
	LatestConsumedByEmail(email string) (*entity.OtpChallenge, error)
	// DeleteExpiredBefore removes stale rows; correctness never depends on it,
	// expiry is always checked against ExpiresAt.
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}
