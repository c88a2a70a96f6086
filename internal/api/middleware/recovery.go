package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery captura panics, registra com stack trace e responde 500 no mesmo
// envelope JSON das demais respostas da API.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				correlationID := GetCorrelationID(c)

				logger.Error("panic recuperado",
					zap.Any("error", r),
					zap.Stack("stack"),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String(CorrelationIDKey, correlationID),
				)

				response := gin.H{
					"status":  "error",
					"message": "Ocorreu um erro interno no servidor",
				}
				if correlationID != "" {
					response[CorrelationIDKey] = correlationID
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, response)
			}
		}()

		c.Next()
	}
}
