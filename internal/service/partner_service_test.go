package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

func approvedPartner() *entity.Partner {
	now := time.Now()
	return &entity.Partner{
		ID:          5,
		CompanyName: "Reseller LLC",
		ContactName: "Jane Doe",
		Email:       "reseller@example.com",
		Status:      entity.PartnerStatusApproved,
		ApprovedAt:  &now,
	}
}

func TestPartnerService_Approve_Success(t *testing.T) {
	// Arrange
	mockPartnerRepo := new(MockPartnerRepository)
	mockPartnerRepo.On("UpdateStatus", uint(5),
		entity.PartnerStatusPendingApproval, entity.PartnerStatusApproved, mock.Anything).Return(nil)
	mockPartnerRepo.On("GetByID", uint(5)).Return(approvedPartner(), nil)

	svc := NewPartnerService(mockPartnerRepo, nil)

	// Act
	result, err := svc.Approve(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerStatusApproved, result.Partner.Status)
	require.NotNil(t, result.Partner.ApprovedAt, "Момент одобрения должен быть зафиксирован")
	mockPartnerRepo.AssertExpectations(t)
}

func TestPartnerService_Approve_AlreadyDecided(t *testing.T) {
	// Arrange: условный UPDATE не нашёл строку в PENDING_APPROVAL
	mockPartnerRepo := new(MockPartnerRepository)
	mockPartnerRepo.On("UpdateStatus", uint(5),
		entity.PartnerStatusPendingApproval, entity.PartnerStatusApproved, mock.Anything).Return(apperrors.ErrConflict)

	svc := NewPartnerService(mockPartnerRepo, nil)

	// Act
	_, err := svc.Approve(5)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Рассмотренная заявка не должна одобряться повторно")
	mockPartnerRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestPartnerService_Approve_LosesRaceToConcurrentDecision(t *testing.T) {
	// Arrange: пока одобрение было в пути, второй администратор отклонил заявку.
	// Условный UPDATE проигравшего возвращает конфликт, договор не генерируется.
	mockPartnerRepo := new(MockPartnerRepository)
	mockPartnerRepo.On("UpdateStatus", uint(5),
		entity.PartnerStatusPendingApproval, entity.PartnerStatusApproved, mock.Anything).Return(apperrors.ErrConflict)

	store := &recordingDocumentStore{}
	documents, err := NewDocumentService(store, t.TempDir())
	require.NoError(t, err)

	svc := NewPartnerService(mockPartnerRepo, documents)

	// Act
	_, err = svc.Approve(5)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, store.storedKey, "Договор не должен генерироваться для проигравшего решения")
	mockPartnerRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestPartnerService_Approve_AgreementFailureKeepsDecision(t *testing.T) {
	// Arrange: генерация договора падает, решение остаётся
	mockPartnerRepo := new(MockPartnerRepository)
	mockPartnerRepo.On("UpdateStatus", uint(5),
		entity.PartnerStatusPendingApproval, entity.PartnerStatusApproved, mock.Anything).Return(nil)
	mockPartnerRepo.On("GetByID", uint(5)).Return(approvedPartner(), nil)

	documents, err := NewDocumentService(&failingDocumentStore{err: errors.New("store offline")}, t.TempDir())
	require.NoError(t, err)

	svc := NewPartnerService(mockPartnerRepo, documents)

	// Act
	result, err := svc.Approve(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerStatusApproved, result.Partner.Status)
	assert.Error(t, result.DocumentErr)
	assert.Empty(t, result.Partner.AgreementURL, "URL договора не должен появиться при сбое")
	mockPartnerRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestPartnerService_Reject_Success(t *testing.T) {
	// Arrange
	rejected := approvedPartner()
	rejected.Status = entity.PartnerStatusRejected
	rejected.ApprovedAt = nil

	mockPartnerRepo := new(MockPartnerRepository)
	mockPartnerRepo.On("UpdateStatus", uint(5),
		entity.PartnerStatusPendingApproval, entity.PartnerStatusRejected, mock.Anything).Return(nil)
	mockPartnerRepo.On("GetByID", uint(5)).Return(rejected, nil)

	svc := NewPartnerService(mockPartnerRepo, nil)

	// Act
	partner, err := svc.Reject(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerStatusRejected, partner.Status)
	mockPartnerRepo.AssertExpectations(t)
}
