package service

import (
	"log"
	"time"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
)

// PartnerService управляет рассмотрением заявок партнёров
type PartnerService struct {
	partnerRepo repository.PartnerRepository
	documents   *DocumentService
}

// NewPartnerService создает новый сервис партнёров
func NewPartnerService(partnerRepo repository.PartnerRepository, documents *DocumentService) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		documents:   documents,
	}
}

// PartnerDecisionResult — результат решения по заявке партнёра.
// DocumentErr несёт ошибку генерации договора; решение при этом остаётся в силе.
type PartnerDecisionResult struct {
	Partner     *entity.Partner
	DocumentErr error
}

// List возвращает партнёров для админки
func (s *PartnerService) List(status string, limit, offset int) ([]entity.Partner, int64, error) {
	return s.partnerRepo.List(status, limit, offset)
}

// GetByID возвращает партнёра
func (s *PartnerService) GetByID(id uint) (*entity.Partner, error) {
	return s.partnerRepo.GetByID(id)
}

// Approve переводит заявку PENDING_APPROVAL -> APPROVED условным UPDATE и
// запускает генерацию договора. Из двух одновременных решений побеждает ровно
// одно; проигравшее получает apperrors.ErrConflict, договор для него не
// генерируется. Ошибка генерации договора не откатывает решение.
func (s *PartnerService) Approve(partnerID uint) (*PartnerDecisionResult, error) {
	now := time.Now()
	err := s.partnerRepo.UpdateStatus(partnerID,
		entity.PartnerStatusPendingApproval, entity.PartnerStatusApproved,
		map[string]interface{}{"approved_at": &now})
	if err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.GetByID(partnerID)
	if err != nil {
		return nil, err
	}

	result := &PartnerDecisionResult{Partner: partner}
	if s.documents == nil {
		return result, nil
	}

	url, docErr := s.documents.GenerateAgreement(partner)
	if docErr != nil {
		log.Printf("[PartnerService] договор для партнёра ID=%d не сгенерирован: %v", partner.ID, docErr)
		result.DocumentErr = docErr
		return result, nil
	}

	partner.AgreementURL = url
	if err := s.partnerRepo.Update(partner); err != nil {
		log.Printf("[PartnerService] не удалось сохранить URL договора для ID=%d: %v", partner.ID, err)
		result.DocumentErr = err
	}
	return result, nil
}

// Reject переводит заявку PENDING_APPROVAL -> REJECTED
func (s *PartnerService) Reject(partnerID uint) (*entity.Partner, error) {
	err := s.partnerRepo.UpdateStatus(partnerID,
		entity.PartnerStatusPendingApproval, entity.PartnerStatusRejected, nil)
	if err != nil {
		return nil, err
	}
	return s.partnerRepo.GetByID(partnerID)
}
