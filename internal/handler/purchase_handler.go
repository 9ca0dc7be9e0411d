package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// PurchaseHandler обрабатывает заявки на покупку услуг
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler создает новый обработчик покупок
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// CreatePurchaseRequest представляет запрос на покупку услуги
type CreatePurchaseRequest struct {
	OfferingID   uint   `json:"offering_id" binding:"required"`
	PeriodMonths int    `json:"period_months" binding:"required,min=1,max=36"`
	PaymentNote  string `json:"payment_note" binding:"omitempty,max=500"`
}

// CreatePurchase обрабатывает POST /api/purchases
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	purchase, err := h.purchaseService.Create(userID, service.PurchaseInput{
		OfferingID:   req.OfferingID,
		PeriodMonths: req.PeriodMonths,
		PaymentNote:  req.PaymentNote,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

// ListMyPurchases обрабатывает GET /api/purchases
func (h *PurchaseHandler) ListMyPurchases(c *gin.Context) {
	userID := c.GetUint("user_id")
	limit, offset := paginationParams(c)

	purchases, total, err := h.purchaseService.ListByUser(userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases, "total": total})
}

// GetMyPurchase обрабатывает GET /api/purchases/:id
func (h *PurchaseHandler) GetMyPurchase(c *gin.Context) {
	userID := c.GetUint("user_id")
	purchaseID := c.GetUint("purchaseID")

	purchase, err := h.purchaseService.GetForUser(purchaseID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

// ListPurchases обрабатывает GET /api/admin/purchases
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	limit, offset := paginationParams(c)
	status := c.Query("status")

	purchases, total, err := h.purchaseService.List(status, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases, "total": total})
}

// ApprovePurchase обрабатывает PUT /api/admin/purchases/:id/approve
func (h *PurchaseHandler) ApprovePurchase(c *gin.Context) {
	purchaseID := c.GetUint("purchaseID")

	result, err := h.purchaseService.Approve(purchaseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"purchase": result.Purchase}
	if result.DocumentErr != nil {
		// Решение остается в силе, счет можно сгенерировать повторно
		resp["invoice_error"] = "Invoice generation failed, the purchase is approved"
	}
	c.JSON(http.StatusOK, resp)
}

// RejectPurchase обрабатывает PUT /api/admin/purchases/:id/reject
func (h *PurchaseHandler) RejectPurchase(c *gin.Context) {
	purchaseID := c.GetUint("purchaseID")

	purchase, err := h.purchaseService.Reject(purchaseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}
