package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реального RegistrationService
// Handler возвращает 400 до вызова сервиса
// ============================================================================

func TestRequestCode_ValidationErrors(t *testing.T) {
	handler := &RegistrationHandler{} // nil services — OK для validation tests

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			body:       map[string]string{"audience": "user"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email format",
			body:       map[string]string{"email": "not-an-email"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown audience",
			body:       map[string]string{"email": "user@test.com", "audience": "reseller"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/registration/request-code", tt.body)
			handler.RequestCode(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp["error"], "Invalid request data")
		})
	}
}

func TestVerifyCode_ValidationErrors(t *testing.T) {
	handler := &RegistrationHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "code too short",
			body: map[string]string{"email": "user@test.com", "code": "123"},
		},
		{
			name: "code not numeric",
			body: map[string]string{"email": "user@test.com", "code": "12ab56"},
		},
		{
			name: "missing email",
			body: map[string]string{"code": "123456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/registration/verify-code", tt.body)
			handler.VerifyCode(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp["error"], "OTP must be 6 digits")
		})
	}
}

func TestRegisterUser_ValidationErrors(t *testing.T) {
	handler := &RegistrationHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing full_name",
			body: map[string]string{"email": "user@test.com", "password": "password123"},
		},
		{
			name: "password too short",
			body: map[string]string{"email": "user@test.com", "full_name": "New User", "password": "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/registration/user", tt.body)
			handler.RegisterUser(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterPartner_ValidationErrors(t *testing.T) {
	handler := &RegistrationHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing company_name",
			body: map[string]string{"email": "p@test.com", "contact_name": "Jane Doe"},
		},
		{
			name: "missing contact_name",
			body: map[string]string{"email": "p@test.com", "company_name": "Reseller LLC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/registration/partner", tt.body)
			handler.RegisterPartner(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
