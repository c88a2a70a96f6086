package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader é o cabeçalho HTTP do id de correlação.
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey é a chave do id de correlação no gin.Context.
	CorrelationIDKey = "correlation_id"
)

// CorrelationID garante um id por requisição, reaproveitando o do cliente quando enviado.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Header(CorrelationIDHeader, correlationID)
		c.Set(CorrelationIDKey, correlationID)

		c.Next()
	}
}

// GetCorrelationID devolve o id de correlação da requisição, ou "".
func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(CorrelationIDKey); exists {
		if correlationID, ok := id.(string); ok {
			return correlationID
		}
	}
	return ""
}
