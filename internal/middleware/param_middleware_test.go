package middleware

import (
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

func runExtractUintParam(t *testing.T, rawValue string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/offerings/"+rawValue, nil)
	c.Params = gin.Params{{Key: "id", Value: rawValue}}

	ExtractUintParam("id", "offeringID")(c)
	return c, w
}

func TestExtractUintParam_ValidID(t *testing.T) {
	// Act
	c, w := runExtractUintParam(t, "42")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted(), "Валидный ID не должен прерывать цепочку")
	assert.Equal(t, uint(42), c.GetUint("offeringID"), "ID должен быть сохранен в контексте")
}

func TestExtractUintParam_InvalidID(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"не число", "abc"},
		{"отрицательное", "-1"},
		{"ноль", "0"},
		{"пустое", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			c, w := runExtractUintParam(t, tc.value)

			// Assert
			require.True(t, c.IsAborted(), "Некорректный ID должен прерывать цепочку")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
