package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
	"github.com/yourusername/hostpanel-api/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func createTestAuthService(t *testing.T, userRepo *MockUserRepository) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-key", 1)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	return svc
}

func hashedUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &entity.User{
		ID:       1,
		FullName: "Test User",
		Email:    "user@example.com",
		Password: string(hash),
		Role:     "user",
	}
}

func TestAuthService_Login_ValidCredentials(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "user@example.com").Return(hashedUser(t, "password123"), nil)

	svc := createTestAuthService(t, mockUserRepo)

	// Act: email нормализуется перед поиском
	result, err := svc.Login("  User@Example.COM ", "password123")

	// Assert
	require.NoError(t, err, "Вход с верными данными должен быть успешным")
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, uint(1), result.User.ID)
	assert.Greater(t, result.ExpiresIn, 0)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "user@example.com").Return(hashedUser(t, "password123"), nil)

	svc := createTestAuthService(t, mockUserRepo)

	// Act
	_, err := svc.Login("user@example.com", "wrongpassword")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	svc := createTestAuthService(t, mockUserRepo)

	// Act
	_, err := svc.Login("nobody@example.com", "password123")

	// Assert: та же ошибка, что и при неверном пароле
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "Ошибка не должна раскрывать, существует ли email")
}

func TestAuthService_IssueTokenFor(t *testing.T) {
	// Arrange
	svc := createTestAuthService(t, new(MockUserRepository))
	user := &entity.User{ID: 42, Email: "new@example.com", Role: "user"}

	// Act
	token, expiresIn, err := svc.IssueTokenFor(user)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)
}
