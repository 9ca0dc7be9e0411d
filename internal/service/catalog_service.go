package service

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

const catalogCacheTTL = 5 * time.Minute

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// CatalogService предоставляет витрину услуг и их администрирование.
// Публичный список кешируется в Redis; кеш сбрасывается при любом изменении.
type CatalogService struct {
	offeringRepo repository.OfferingRepository
	cacheRepo    repository.CacheRepository
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(offeringRepo repository.OfferingRepository, cacheRepo repository.CacheRepository) *CatalogService {
	return &CatalogService{
		offeringRepo: offeringRepo,
		cacheRepo:    cacheRepo,
	}
}

// OfferingInput DTO для создания/обновления позиции каталога
type OfferingInput struct {
	Name         string
	Category     string
	Description  string
	MonthlyPrice float64
	Currency     string
	Active       *bool
}

// ListActive возвращает активные позиции каталога (сначала из кеша)
func (s *CatalogService) ListActive(category string) ([]entity.Offering, error) {
	cacheKey := "catalog:active:" + category
	if s.cacheRepo != nil {
		var cached []entity.Offering
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	offerings, err := s.offeringRepo.ListActive(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, offerings, catalogCacheTTL); err != nil {
			log.Printf("[CatalogService] не удалось записать кеш каталога: %v", err)
		}
	}
	return offerings, nil
}

// GetByID возвращает позицию каталога
func (s *CatalogService) GetByID(id uint) (*entity.Offering, error) {
	return s.offeringRepo.GetByID(id)
}

// ListAll возвращает все позиции для админки
func (s *CatalogService) ListAll(limit, offset int) ([]entity.Offering, int64, error) {
	return s.offeringRepo.ListAll(limit, offset)
}

// Create создает позицию каталога
func (s *CatalogService) Create(input OfferingInput) (*entity.Offering, error) {
	if err := validateOfferingInput(&input); err != nil {
		return nil, err
	}

	offering := &entity.Offering{
		Name:         input.Name,
		Slug:         makeSlug(input.Name),
		Category:     input.Category,
		Description:  input.Description,
		MonthlyPrice: input.MonthlyPrice,
		Currency:     input.Currency,
		Active:       true,
	}
	if err := s.offeringRepo.Create(offering); err != nil {
		if err == apperrors.ErrConflict {
			return nil, fmt.Errorf("%w: offering with this name already exists", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	s.invalidateCache()
	return offering, nil
}

// Update обновляет позицию каталога
func (s *CatalogService) Update(id uint, input OfferingInput) (*entity.Offering, error) {
	offering, err := s.offeringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateOfferingInput(&input); err != nil {
		return nil, err
	}

	offering.Name = input.Name
	offering.Category = input.Category
	offering.Description = input.Description
	offering.MonthlyPrice = input.MonthlyPrice
	offering.Currency = input.Currency
	if input.Active != nil {
		offering.Active = *input.Active
	}
	if err := s.offeringRepo.Update(offering); err != nil {
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}

	s.invalidateCache()
	return offering, nil
}

// Deactivate убирает позицию с витрины, не удаляя её
func (s *CatalogService) Deactivate(id uint) error {
	offering, err := s.offeringRepo.GetByID(id)
	if err != nil {
		return err
	}
	offering.Active = false
	if err := s.offeringRepo.Update(offering); err != nil {
		return fmt.Errorf("failed to deactivate offering: %w", err)
	}

	s.invalidateCache()
	return nil
}

func (s *CatalogService) invalidateCache() {
	if s.cacheRepo == nil {
		return
	}
	for _, category := range []string{"", "hosting", "erp_cloud"} {
		if err := s.cacheRepo.Delete("catalog:active:" + category); err != nil {
			log.Printf("[CatalogService] не удалось сбросить кеш каталога (%q): %v", category, err)
		}
	}
}

func validateOfferingInput(input *OfferingInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if input.Category != "hosting" && input.Category != "erp_cloud" {
		return fmt.Errorf("%w: category must be \"hosting\" or \"erp_cloud\"", apperrors.ErrValidation)
	}
	if input.MonthlyPrice < 0 {
		return fmt.Errorf("%w: monthly_price must not be negative", apperrors.ErrValidation)
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}
	return nil
}

func makeSlug(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
