package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// MockLeadRepository реализует repository.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(lead *entity.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(id uint) (*entity.Lead, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) MarkHandled(leadID uint) error {
	args := m.Called(leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) List(kind string, onlyUnhandled bool, limit, offset int) ([]entity.Lead, int64, error) {
	args := m.Called(kind, onlyUnhandled, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Lead), args.Get(1).(int64), args.Error(2)
}

func TestLeadService_Create_Success(t *testing.T) {
	// Arrange
	mockLeadRepo := new(MockLeadRepository)
	mockLeadRepo.On("Create", mock.AnythingOfType("*entity.Lead")).Return(nil)

	svc := NewLeadService(mockLeadRepo)

	// Act: входные поля нормализуются
	lead, err := svc.Create(entity.LeadKindDemo, LeadInput{
		Name:    "  Jane Doe  ",
		Email:   " Jane@Example.COM ",
		Company: " Acme ",
		Message: "Хочу демо ERP",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.LeadKindDemo, lead.Kind)
	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "jane@example.com", lead.Email)
	assert.Equal(t, "Acme", lead.Company)
	assert.False(t, lead.Handled, "Новое обращение не обработано")
	mockLeadRepo.AssertExpectations(t)
}

func TestLeadService_Create_UnknownKind(t *testing.T) {
	svc := NewLeadService(new(MockLeadRepository))

	_, err := svc.Create("spam", LeadInput{Name: "Jane", Email: "jane@example.com"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLeadService_Create_InvalidEmail(t *testing.T) {
	svc := NewLeadService(new(MockLeadRepository))

	_, err := svc.Create(entity.LeadKindContact, LeadInput{Name: "Jane", Email: "not-an-email"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLeadService_Create_MissingName(t *testing.T) {
	svc := NewLeadService(new(MockLeadRepository))

	_, err := svc.Create(entity.LeadKindContact, LeadInput{Name: "   ", Email: "jane@example.com"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
