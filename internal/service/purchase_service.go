package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// PurchaseService управляет заявками на покупку услуг.
// Оплата фиктивная: заявка создается в PENDING и рассматривается администратором.
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	offeringRepo repository.OfferingRepository
	userRepo     repository.UserRepository
	documents    *DocumentService
}

// NewPurchaseService создает новый сервис покупок
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	offeringRepo repository.OfferingRepository,
	userRepo repository.UserRepository,
	documents *DocumentService,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		offeringRepo: offeringRepo,
		userRepo:     userRepo,
		documents:    documents,
	}
}

// PurchaseInput DTO для создания заявки
type PurchaseInput struct {
	OfferingID   uint
	PeriodMonths int
	PaymentNote  string
}

// DecisionResult is the outcome of an admin decision. DocumentErr carries a
// best-effort document generation failure: the decided record always stands.
type DecisionResult struct {
	Purchase    *entity.Purchase
	DocumentErr error
}

// Create создает заявку на покупку активной услуги
func (s *PurchaseService) Create(userID uint, input PurchaseInput) (*entity.Purchase, error) {
	if input.PeriodMonths < 1 || input.PeriodMonths > 36 {
		return nil, fmt.Errorf("%w: period_months must be between 1 and 36", apperrors.ErrValidation)
	}

	offering, err := s.offeringRepo.GetByID(input.OfferingID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: offering not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load offering: %w", err)
	}
	if !offering.Active {
		return nil, fmt.Errorf("%w: offering is not available for purchase", apperrors.ErrConflict)
	}

	purchase := &entity.Purchase{
		Reference:    uuid.NewString(),
		UserID:       userID,
		OfferingID:   offering.ID,
		PeriodMonths: input.PeriodMonths,
		Amount:       offering.MonthlyPrice * float64(input.PeriodMonths),
		Currency:     offering.Currency,
		PaymentNote:  input.PaymentNote,
		Status:       entity.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	log.Printf("[PurchaseService] заявка %s создана пользователем ID=%d", purchase.Reference, userID)
	return purchase, nil
}

// ListByUser возвращает заявки пользователя
func (s *PurchaseService) ListByUser(userID uint, limit, offset int) ([]entity.Purchase, int64, error) {
	return s.purchaseRepo.ListByUser(userID, limit, offset)
}

// List возвращает заявки для админки
func (s *PurchaseService) List(status string, limit, offset int) ([]entity.Purchase, int64, error) {
	return s.purchaseRepo.List(status, limit, offset)
}

// GetForUser возвращает заявку, проверяя принадлежность пользователю
func (s *PurchaseService) GetForUser(purchaseID, userID uint) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return purchase, nil
}

// Approve переводит заявку PENDING -> APPROVED и запускает генерацию счета.
// Если заявка уже рассмотрена, возвращает apperrors.ErrConflict.
// Ошибка генерации счета не откатывает решение: она возвращается отдельно.
func (s *PurchaseService) Approve(purchaseID uint) (*DecisionResult, error) {
	now := time.Now()
	err := s.purchaseRepo.UpdateStatus(purchaseID,
		entity.PurchaseStatusPending, entity.PurchaseStatusApproved,
		map[string]interface{}{"decided_at": &now})
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}

	result := &DecisionResult{Purchase: purchase}
	if s.documents == nil {
		return result, nil
	}

	url, docErr := s.documents.GenerateInvoice(purchase)
	if docErr != nil {
		log.Printf("[PurchaseService] счет для заявки %s не сгенерирован: %v", purchase.Reference, docErr)
		result.DocumentErr = docErr
		return result, nil
	}

	purchase.InvoiceURL = url
	if err := s.purchaseRepo.Update(purchase); err != nil {
		log.Printf("[PurchaseService] не удалось сохранить URL счета для %s: %v", purchase.Reference, err)
		result.DocumentErr = err
	}
	return result, nil
}

// Reject переводит заявку PENDING -> REJECTED
func (s *PurchaseService) Reject(purchaseID uint) (*entity.Purchase, error) {
	now := time.Now()
	err := s.purchaseRepo.UpdateStatus(purchaseID,
		entity.PurchaseStatusPending, entity.PurchaseStatusRejected,
		map[string]interface{}{"decided_at": &now})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(purchaseID)
}
