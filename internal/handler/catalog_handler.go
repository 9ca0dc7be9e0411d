package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// CatalogHandler обрабатывает запросы каталога услуг
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// OfferingRequest представляет запрос на создание/обновление позиции каталога
type OfferingRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	Category     string  `json:"category" binding:"required,oneof=hosting erp_cloud"`
	Description  string  `json:"description" binding:"omitempty"`
	MonthlyPrice float64 `json:"monthly_price" binding:"required,gte=0"`
	Currency     string  `json:"currency" binding:"omitempty,len=3"`
	Active       *bool   `json:"active" binding:"omitempty"`
}

// ListOfferings обрабатывает GET /api/offerings (публичная витрина)
func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	category := c.Query("category")
	offerings, err := h.catalogService.ListActive(category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

// GetOffering обрабатывает GET /api/offerings/:id
func (h *CatalogHandler) GetOffering(c *gin.Context) {
	offeringID := c.GetUint("offeringID")
	offering, err := h.catalogService.GetByID(offeringID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offering": offering})
}

// ListAllOfferings обрабатывает GET /api/admin/offerings
func (h *CatalogHandler) ListAllOfferings(c *gin.Context) {
	limit, offset := paginationParams(c)
	offerings, total, err := h.catalogService.ListAll(limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings, "total": total})
}

// CreateOffering обрабатывает POST /api/admin/offerings
func (h *CatalogHandler) CreateOffering(c *gin.Context) {
	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	offering, err := h.catalogService.Create(service.OfferingInput{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		MonthlyPrice: req.MonthlyPrice,
		Currency:     req.Currency,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offering": offering})
}

// UpdateOffering обрабатывает PUT /api/admin/offerings/:id
func (h *CatalogHandler) UpdateOffering(c *gin.Context) {
	offeringID := c.GetUint("offeringID")

	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	offering, err := h.catalogService.Update(offeringID, service.OfferingInput{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		MonthlyPrice: req.MonthlyPrice,
		Currency:     req.Currency,
		Active:       req.Active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offering": offering})
}

// DeactivateOffering обрабатывает PUT /api/admin/offerings/:id/deactivate
func (h *CatalogHandler) DeactivateOffering(c *gin.Context) {
	offeringID := c.GetUint("offeringID")
	if err := h.catalogService.Deactivate(offeringID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// paginationParams извлекает limit/offset с разумными умолчаниями
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
