package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/hostpanel-api/internal/service"
)

// RegistrationHandler обрабатывает трёхшаговый поток регистрации:
// запрос кода, проверка кода, отправка формы
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	authService         *service.AuthService
}

// NewRegistrationHandler создает новый обработчик регистрации
func NewRegistrationHandler(registrationService *service.RegistrationService, authService *service.AuthService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		authService:         authService,
	}
}

// RequestCodeRequest представляет запрос на выдачу OTP-кода
type RequestCodeRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Audience string `json:"audience" binding:"omitempty,oneof=user partner"`
}

// VerifyCodeRequest представляет запрос на проверку OTP-кода
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// RegisterUserRequest представляет финальную форму регистрации пользователя
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Company  string `json:"company" binding:"omitempty,max=150"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Country  string `json:"country" binding:"omitempty,max=100"`
}

// RegisterPartnerRequest представляет финальную форму заявки партнёра
type RegisterPartnerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"company_name" binding:"required,min=2,max=150"`
	ContactName string `json:"contact_name" binding:"required,min=2,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Website     string `json:"website" binding:"omitempty,max=255"`
	Address     string `json:"address" binding:"omitempty,max=255"`
	City        string `json:"city" binding:"omitempty,max=100"`
	Country     string `json:"country" binding:"omitempty,max=100"`
	TaxNumber   string `json:"tax_number" binding:"omitempty,max=50"`
}

// RequestCode обрабатывает POST /api/registration/request-code
func (h *RegistrationHandler) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	if req.Audience == "" {
		req.Audience = service.AudienceUser
	}

	result, err := h.registrationService.RequestCode(c.Request.Context(), req.Email, req.Audience)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"ok": true}
	if result.DeliveryFailed {
		// Осознанное послабление: код возвращается вызывающему, когда письмо
		// не ушло, чтобы регистрацию можно было завершить вручную
		resp["delivery_failed"] = true
		resp["message"] = "Failed to send OTP, please try again"
		if result.CodeForTesting != "" {
			resp["code_for_testing"] = result.CodeForTesting
		}
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyCode обрабатывает POST /api/registration/verify-code
func (h *RegistrationHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP must be 6 digits", "details": err.Error()})
		return
	}

	if err := h.registrationService.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterUser обрабатывает POST /api/registration/user
func (h *RegistrationHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, err := h.registrationService.RegisterUser(c.Request.Context(), service.UserRegistrationInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Phone:    req.Phone,
		Company:  req.Company,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Выдаем токен сразу, чтобы портал мог залогинить нового пользователя
	token, expiresIn, err := h.authService.IssueTokenFor(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":        user,
		"accessToken": token,
		"expiresIn":   expiresIn,
		"tokenType":   "Bearer",
	})
}

// RegisterPartner обрабатывает POST /api/registration/partner
func (h *RegistrationHandler) RegisterPartner(c *gin.Context) {
	var req RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	partner, err := h.registrationService.RegisterPartner(c.Request.Context(), service.PartnerRegistrationInput{
		Email:       req.Email,
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Website:     req.Website,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		TaxNumber:   req.TaxNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"partner": partner})
}
