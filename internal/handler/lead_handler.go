package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// LeadHandler обрабатывает обращения с публичного сайта и их админку
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler создает новый обработчик обращений
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// LeadRequest представляет запрос демо или контактной формы
type LeadRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Company string `json:"company" binding:"omitempty,max=150"`
	Message string `json:"message" binding:"omitempty,max=2000"`
}

// RequestDemo обрабатывает POST /api/leads/demo
func (h *LeadHandler) RequestDemo(c *gin.Context) {
	h.createLead(c, entity.LeadKindDemo)
}

// Contact обрабатывает POST /api/leads/contact
func (h *LeadHandler) Contact(c *gin.Context) {
	h.createLead(c, entity.LeadKindContact)
}

func (h *LeadHandler) createLead(c *gin.Context, kind string) {
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	lead, err := h.leadService.Create(kind, service.LeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

// ListLeads обрабатывает GET /api/admin/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	limit, offset := paginationParams(c)
	kind := c.Query("kind")
	onlyUnhandled := c.Query("unhandled") == "true"

	leads, total, err := h.leadService.List(kind, onlyUnhandled, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads, "total": total})
}

// MarkLeadHandled обрабатывает PUT /api/admin/leads/:id/handled
func (h *LeadHandler) MarkLeadHandled(c *gin.Context) {
	leadID := c.GetUint("leadID")
	if err := h.leadService.MarkHandled(leadID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ExportLeads обрабатывает GET /api/admin/leads/export — выгрузка в Excel
func (h *LeadHandler) ExportLeads(c *gin.Context) {
	kind := c.Query("kind")
	onlyUnhandled := c.Query("unhandled") == "true"

	// Выгружаем без пагинации, StreamWriter справляется с большими объемами
	leads, _, err := h.leadService.List(kind, onlyUnhandled, 10000, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("leads_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[LeadHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"ID", "Тип", "Имя", "Email", "Телефон", "Компания", "Сообщение", "Обработано", "Создано"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[LeadHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, l := range leads {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		handled := "Нет"
		if l.Handled {
			handled = "Да"
		}

		row := []interface{}{
			l.ID,
			l.Kind,
			sanitizeForExcel(l.Name),
			sanitizeForExcel(l.Email),
			sanitizeForExcel(l.Phone),
			sanitizeForExcel(l.Company),
			sanitizeForExcel(l.Message),
			handled,
			l.CreatedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[LeadHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[LeadHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeadHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
