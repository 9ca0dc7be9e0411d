package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// respondServiceError maps service errors to HTTP responses with a stable
// error_type and a message the UI can act on directly.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{
			"error": "This email is already registered", "error_type": "duplicate_email"})
	case errors.Is(err, service.ErrNoActiveChallenge):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active code for this email, request a new one", "error_type": "no_active_challenge"})
	case errors.Is(err, service.ErrChallengeExpired):
		c.JSON(http.StatusGone, gin.H{
			"error": "The code has expired, request a new one", "error_type": "challenge_expired"})
	case errors.Is(err, service.ErrChallengeConsumed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "This code was already used, request a new one", "error_type": "challenge_consumed"})
	case errors.Is(err, service.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Incorrect code, please try again", "error_type": "code_mismatch"})
	case errors.Is(err, service.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many incorrect attempts, request a new code", "error_type": "too_many_attempts"})
	case errors.Is(err, service.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Verify your email before submitting the form", "error_type": "email_not_verified"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "error_type": "validation_failed"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "The resource was already processed", "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service temporarily unavailable, please try again", "error_type": "upstream_unavailable"})
	default:
		log.Printf("[Handler] внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error", "error_type": "internal"})
	}
}
