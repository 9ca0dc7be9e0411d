package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam валидирует числовой параметр маршрута и кладёт его в
// контекст Gin под заданным ключом. Маршруты услуг, заявок на покупку,
// партнёров и обращений вешают его на свои сегменты :id, поэтому обработчики
// читают уже проверенный offeringID/purchaseID/partnerID/leadID.
// Ноль отклоняется: идентификаторы записей начинаются с единицы.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		// Сохраняем как uint для единообразия
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
