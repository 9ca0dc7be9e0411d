package service

import (
	"fmt"
	"log"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
	"github.com/yourusername/hostpanel-api/pkg/auth"
)

// AuthService предоставляет вход по паролю и выдачу access-токенов.
// Refresh-токены и ротация сессий сознательно не реализованы.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// LoginResult содержит пользователя и выданный токен
type LoginResult struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int
}

// Login проверяет учетные данные и выдает access-токен.
// Неверный email и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrUnauthorized
	}

	role := user.Role
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] пользователь ID=%d (%s) вошёл в систему", user.ID, user.Email)
	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   s.jwtService.ExpiresInSeconds(),
	}, nil
}

// IssueTokenFor выдает токен сразу после регистрации, чтобы портал мог
// залогинить нового пользователя без второго запроса
func (s *AuthService) IssueTokenFor(user *entity.User) (string, int, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, s.jwtService.ExpiresInSeconds(), nil
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
