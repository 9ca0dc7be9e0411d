package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
	"github.com/yourusername/hostpanel-api/internal/service"
)

func TestRespondServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantErrorType string
	}{
		{
			name:          "duplicate email",
			err:           service.ErrDuplicateEmail,
			wantStatus:    http.StatusConflict,
			wantErrorType: "duplicate_email",
		},
		{
			name:          "no active challenge",
			err:           service.ErrNoActiveChallenge,
			wantStatus:    http.StatusNotFound,
			wantErrorType: "no_active_challenge",
		},
		{
			name:          "challenge expired",
			err:           service.ErrChallengeExpired,
			wantStatus:    http.StatusGone,
			wantErrorType: "challenge_expired",
		},
		{
			name:          "challenge consumed",
			err:           service.ErrChallengeConsumed,
			wantStatus:    http.StatusConflict,
			wantErrorType: "challenge_consumed",
		},
		{
			name:          "code mismatch",
			err:           service.ErrCodeMismatch,
			wantStatus:    http.StatusBadRequest,
			wantErrorType: "code_mismatch",
		},
		{
			name:          "too many attempts",
			err:           service.ErrTooManyAttempts,
			wantStatus:    http.StatusTooManyRequests,
			wantErrorType: "too_many_attempts",
		},
		{
			name:          "email not verified",
			err:           service.ErrEmailNotVerified,
			wantStatus:    http.StatusForbidden,
			wantErrorType: "email_not_verified",
		},
		{
			name:          "wrapped validation error",
			err:           fmt.Errorf("%w: period_months must be between 1 and 36", apperrors.ErrValidation),
			wantStatus:    http.StatusUnprocessableEntity,
			wantErrorType: "validation_failed",
		},
		{
			name:          "not found",
			err:           apperrors.ErrNotFound,
			wantStatus:    http.StatusNotFound,
			wantErrorType: "not_found",
		},
		{
			name:          "conflict",
			err:           apperrors.ErrConflict,
			wantStatus:    http.StatusConflict,
			wantErrorType: "conflict",
		},
		{
			name:          "forbidden",
			err:           apperrors.ErrForbidden,
			wantStatus:    http.StatusForbidden,
			wantErrorType: "forbidden",
		},
		{
			name:          "unauthorized",
			err:           apperrors.ErrUnauthorized,
			wantStatus:    http.StatusUnauthorized,
			wantErrorType: "unauthorized",
		},
		{
			name:          "upstream unavailable",
			err:           apperrors.ErrUpstreamUnavailable,
			wantStatus:    http.StatusServiceUnavailable,
			wantErrorType: "upstream_unavailable",
		},
		{
			name:          "unknown error",
			err:           errors.New("boom"),
			wantStatus:    http.StatusInternalServerError,
			wantErrorType: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("GET", "/", nil)
			respondServiceError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, tt.wantErrorType, resp["error_type"])
			assert.NotEmpty(t, resp["error"], "Сообщение об ошибке должно быть заполнено")
		})
	}
}

func TestRespondServiceError_InternalHidesDetails(t *testing.T) {
	c, w := newTestGinContext("GET", "/", nil)
	respondServiceError(c, errors.New("pq: connection refused"))

	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Internal server error", resp["error"], "Внутренние детали не должны утекать клиенту")
}
