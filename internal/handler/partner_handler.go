package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// PartnerHandler обрабатывает админку заявок партнёров
type PartnerHandler struct {
	partnerService *service.PartnerService
}

// NewPartnerHandler создает новый обработчик партнёров
func NewPartnerHandler(partnerService *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// ListPartners обрабатывает GET /api/admin/partners
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	limit, offset := paginationParams(c)
	status := c.Query("status")

	partners, total, err := h.partnerService.List(status, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners, "total": total})
}

// GetPartner обрабатывает GET /api/admin/partners/:id
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	partnerID := c.GetUint("partnerID")

	partner, err := h.partnerService.GetByID(partnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// ApprovePartner обрабатывает PUT /api/admin/partners/:id/approve
func (h *PartnerHandler) ApprovePartner(c *gin.Context) {
	partnerID := c.GetUint("partnerID")

	result, err := h.partnerService.Approve(partnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"partner": result.Partner}
	if result.DocumentErr != nil {
		// Партнёр одобрен, договор можно сгенерировать повторно
		resp["agreement_error"] = "Agreement generation failed, the partner is approved"
	}
	c.JSON(http.StatusOK, resp)
}

// RejectPartner обрабатывает PUT /api/admin/partners/:id/reject
func (h *PartnerHandler) RejectPartner(c *gin.Context) {
	partnerID := c.GetUint("partnerID")

	partner, err := h.partnerService.Reject(partnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": partner})
}
