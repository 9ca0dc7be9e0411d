package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// ============================================================================
// Моки для тестирования PurchaseService
// ============================================================================

// MockPurchaseRepository реализует repository.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(purchase *entity.Purchase) error {
	args := m.Called(purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetByID(id uint) (*entity.Purchase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GetByReference(reference string) (*entity.Purchase, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Update(purchase *entity.Purchase) error {
	args := m.Called(purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateStatus(purchaseID uint, fromStatus, toStatus string, updates map[string]interface{}) error {
	args := m.Called(purchaseID, fromStatus, toStatus, updates)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListByUser(userID uint, limit, offset int) ([]entity.Purchase, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) List(status string, limit, offset int) ([]entity.Purchase, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Purchase), args.Get(1).(int64), args.Error(2)
}

// MockOfferingRepository реализует repository.OfferingRepository
type MockOfferingRepository struct {
	mock.Mock
}

func (m *MockOfferingRepository) Create(offering *entity.Offering) error {
	args := m.Called(offering)
	return args.Error(0)
}

func (m *MockOfferingRepository) GetByID(id uint) (*entity.Offering, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Offering), args.Error(1)
}

func (m *MockOfferingRepository) GetBySlug(slug string) (*entity.Offering, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Offering), args.Error(1)
}

func (m *MockOfferingRepository) Update(offering *entity.Offering) error {
	args := m.Called(offering)
	return args.Error(0)
}

func (m *MockOfferingRepository) ListActive(category string) ([]entity.Offering, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Offering), args.Error(1)
}

func (m *MockOfferingRepository) ListAll(limit, offset int) ([]entity.Offering, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Offering), args.Get(1).(int64), args.Error(2)
}

func activeOffering() *entity.Offering {
	return &entity.Offering{
		ID:           3,
		Name:         "Business Hosting",
		Slug:         "business-hosting",
		Category:     "hosting",
		MonthlyPrice: 25.50,
		Currency:     "USD",
		Active:       true,
	}
}

// ============================================================================
// Тесты для PurchaseService
// ============================================================================

func TestPurchaseService_Create_Success(t *testing.T) {
	// Arrange
	mockOfferingRepo := new(MockOfferingRepository)
	mockOfferingRepo.On("GetByID", uint(3)).Return(activeOffering(), nil)

	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("Create", mock.AnythingOfType("*entity.Purchase")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Purchase).ID = 10
	}).Return(nil)

	svc := NewPurchaseService(mockPurchaseRepo, mockOfferingRepo, new(MockUserRepository), nil)

	// Act
	purchase, err := svc.Create(7, PurchaseInput{OfferingID: 3, PeriodMonths: 12})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, purchase.Status, "Новая заявка должна быть в PENDING")
	assert.InDelta(t, 306.0, purchase.Amount, 0.001, "Сумма = цена за месяц * число месяцев")
	assert.NotEmpty(t, purchase.Reference, "Заявка должна получить reference")
	mockPurchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_Create_InactiveOffering(t *testing.T) {
	// Arrange
	offering := activeOffering()
	offering.Active = false
	mockOfferingRepo := new(MockOfferingRepository)
	mockOfferingRepo.On("GetByID", uint(3)).Return(offering, nil)

	mockPurchaseRepo := new(MockPurchaseRepository)
	svc := NewPurchaseService(mockPurchaseRepo, mockOfferingRepo, new(MockUserRepository), nil)

	// Act
	_, err := svc.Create(7, PurchaseInput{OfferingID: 3, PeriodMonths: 1})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Неактивную услугу купить нельзя")
	mockPurchaseRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPurchaseService_Create_InvalidPeriod(t *testing.T) {
	svc := NewPurchaseService(new(MockPurchaseRepository), new(MockOfferingRepository), new(MockUserRepository), nil)

	_, err := svc.Create(7, PurchaseInput{OfferingID: 3, PeriodMonths: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(7, PurchaseInput{OfferingID: 3, PeriodMonths: 37})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPurchaseService_GetForUser_OwnershipEnforced(t *testing.T) {
	// Arrange: заявка принадлежит другому пользователю
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("GetByID", uint(10)).Return(&entity.Purchase{ID: 10, UserID: 1}, nil)

	svc := NewPurchaseService(mockPurchaseRepo, new(MockOfferingRepository), new(MockUserRepository), nil)

	// Act
	_, err := svc.GetForUser(10, 2)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Чужая заявка должна быть недоступна")
}

func TestPurchaseService_Approve_Success(t *testing.T) {
	// Arrange
	approved := &entity.Purchase{ID: 10, Reference: "ref-1", UserID: 7, Status: entity.PurchaseStatusApproved}
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("UpdateStatus", uint(10), entity.PurchaseStatusPending, entity.PurchaseStatusApproved, mock.Anything).Return(nil)
	mockPurchaseRepo.On("GetByID", uint(10)).Return(approved, nil)

	svc := NewPurchaseService(mockPurchaseRepo, new(MockOfferingRepository), new(MockUserRepository), nil)

	// Act
	result, err := svc.Approve(10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusApproved, result.Purchase.Status)
	assert.NoError(t, result.DocumentErr)
	mockPurchaseRepo.AssertExpectations(t)
}

func TestPurchaseService_Approve_AlreadyDecided(t *testing.T) {
	// Arrange: условный UPDATE не нашёл строку в PENDING
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("UpdateStatus", uint(10), entity.PurchaseStatusPending, entity.PurchaseStatusApproved, mock.Anything).Return(apperrors.ErrConflict)

	svc := NewPurchaseService(mockPurchaseRepo, new(MockOfferingRepository), new(MockUserRepository), nil)

	// Act
	_, err := svc.Approve(10)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повторное решение должно отклоняться")
}

func TestPurchaseService_Approve_InvoiceFailureKeepsDecision(t *testing.T) {
	// Arrange: хранилище документов недоступно
	approved := &entity.Purchase{ID: 10, Reference: "ref-1", UserID: 7, Status: entity.PurchaseStatusApproved}
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("UpdateStatus", uint(10), entity.PurchaseStatusPending, entity.PurchaseStatusApproved, mock.Anything).Return(nil)
	mockPurchaseRepo.On("GetByID", uint(10)).Return(approved, nil)

	documents, err := NewDocumentService(&failingDocumentStore{err: errors.New("store offline")}, t.TempDir())
	require.NoError(t, err)

	svc := NewPurchaseService(mockPurchaseRepo, new(MockOfferingRepository), new(MockUserRepository), documents)

	// Act
	result, err := svc.Approve(10)

	// Assert: решение в силе, ошибка генерации возвращается отдельно
	require.NoError(t, err, "Сбой генерации счета не должен отменять решение")
	assert.Equal(t, entity.PurchaseStatusApproved, result.Purchase.Status)
	assert.Error(t, result.DocumentErr, "Ошибка генерации должна быть видна вызывающему")
	mockPurchaseRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestPurchaseService_Reject_Success(t *testing.T) {
	// Arrange
	rejected := &entity.Purchase{ID: 10, Reference: "ref-1", UserID: 7, Status: entity.PurchaseStatusRejected}
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockPurchaseRepo.On("UpdateStatus", uint(10), entity.PurchaseStatusPending, entity.PurchaseStatusRejected, mock.Anything).Return(nil)
	mockPurchaseRepo.On("GetByID", uint(10)).Return(rejected, nil)

	svc := NewPurchaseService(mockPurchaseRepo, new(MockOfferingRepository), new(MockUserRepository), nil)

	// Act
	purchase, err := svc.Reject(10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusRejected, purchase.Status)
}
