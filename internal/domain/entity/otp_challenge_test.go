package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func freshChallenge(now time.Time) *OtpChallenge {
	return &OtpChallenge{
		ID:          1,
		Email:       "user@example.com",
		Code:        "123456",
		Audience:    "user",
		IssuedAt:    now,
		ExpiresAt:   now.Add(10 * time.Minute),
		MaxAttempts: 5,
	}
}

func TestOtpChallenge_IsActive(t *testing.T) {
	now := time.Now()
	challenge := freshChallenge(now)

	assert.True(t, challenge.IsActive(now), "Свежий challenge должен быть активен")
	assert.False(t, challenge.IsConsumed())
	assert.False(t, challenge.IsExpired(now))
}

func TestOtpChallenge_IsActive_Expired(t *testing.T) {
	now := time.Now()
	challenge := freshChallenge(now)

	later := now.Add(11 * time.Minute)
	assert.True(t, challenge.IsExpired(later))
	assert.False(t, challenge.IsActive(later), "Истёкший challenge не активен")
}

func TestOtpChallenge_IsActive_Consumed(t *testing.T) {
	now := time.Now()
	challenge := freshChallenge(now)
	challenge.ConsumedAt = &now

	assert.True(t, challenge.IsConsumed())
	assert.False(t, challenge.IsActive(now), "Использованный challenge не активен")
}

func TestOtpChallenge_IsActive_Superseded(t *testing.T) {
	now := time.Now()
	challenge := freshChallenge(now)
	challenge.Superseded = true

	assert.False(t, challenge.IsActive(now), "Вытесненный challenge не активен")
}
