package service

import "errors"

// Registration flow specific errors used by handlers for stable error_type mapping.
var (
	ErrDuplicateEmail    = errors.New("duplicate_email")
	ErrNoActiveChallenge = errors.New("no_active_challenge")
	ErrChallengeExpired  = errors.New("challenge_expired")
	ErrChallengeConsumed = errors.New("challenge_consumed")
	ErrCodeMismatch      = errors.New("code_mismatch")
	ErrTooManyAttempts   = errors.New("too_many_attempts")
	ErrEmailNotVerified  = errors.New("email_not_verified")
)
