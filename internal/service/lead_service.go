package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// LeadService принимает обращения с публичного сайта (запрос демо, контакты)
type LeadService struct {
	leadRepo repository.LeadRepository
}

// NewLeadService создает новый сервис обращений
func NewLeadService(leadRepo repository.LeadRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// LeadInput DTO для обращения с сайта
type LeadInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

// Create сохраняет обращение указанного типа
func (s *LeadService) Create(kind string, input LeadInput) (*entity.Lead, error) {
	if kind != entity.LeadKindDemo && kind != entity.LeadKindContact {
		return nil, fmt.Errorf("%w: unknown lead kind %q", apperrors.ErrValidation, kind)
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !emailShapeRe.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}

	lead := &entity.Lead{
		Kind:    kind,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   strings.TrimSpace(input.Phone),
		Company: strings.TrimSpace(input.Company),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.leadRepo.Create(lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

// List возвращает обращения для админки
func (s *LeadService) List(kind string, onlyUnhandled bool, limit, offset int) ([]entity.Lead, int64, error) {
	return s.leadRepo.List(kind, onlyUnhandled, limit, offset)
}

// MarkHandled отмечает обращение обработанным
func (s *LeadService) MarkHandled(leadID uint) error {
	return s.leadRepo.MarkHandled(leadID)
}
