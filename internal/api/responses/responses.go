// internal/api/responses/responses.go
package responses

import (
	"net/http"

	"conciliacao-service/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// APIResponse defines the standard envelope for API responses.
type APIResponse struct {
	Status        string      `json:"status"` // "success", "empty" ou "error"
	Data          interface{} `json:"data,omitempty"`
	Message       string      `json:"message,omitempty"`
	Errors        []string    `json:"errors,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// InitLogger define o logger usado para registrar as respostas da API.
func InitLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

func fields(c *gin.Context, status int) []zap.Field {
	return []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.String(middleware.CorrelationIDKey, middleware.GetCorrelationID(c)),
	}
}

// Success sends a successful response with the provided data and message.
func Success(c *gin.Context, data interface{}, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message, CorrelationID: middleware.GetCorrelationID(c)}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success", fields(c, http.StatusOK)...)
}

// Empty responde 200 para processamentos válidos que não produziram saída.
func Empty(c *gin.Context, message string) {
	resp := APIResponse{Status: "empty", Message: message, CorrelationID: middleware.GetCorrelationID(c)}
	c.JSON(http.StatusOK, resp)
	logger.Info("API empty", fields(c, http.StatusOK)...)
}

// Attachment envia um arquivo para download.
func Attachment(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, content)
	logger.Info("API attachment",
		append(fields(c, http.StatusOK), zap.String("arquivo", fileName), zap.Int("bytes", len(content)))...)
}

// InternalError registra a causa no log e responde 500 apenas com a mensagem genérica.
func InternalError(c *gin.Context, message string, cause error) {
	resp := APIResponse{Status: "error", Message: message, CorrelationID: middleware.GetCorrelationID(c)}
	c.JSON(http.StatusInternalServerError, resp)
	logger.Error("API error", append(fields(c, http.StatusInternalServerError), zap.Error(cause))...)
}

// Error sends an error response with the provided code, message, and optional errors.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs, CorrelationID: middleware.GetCorrelationID(c)}
	c.JSON(code, resp)
	logger.Error("API error", append(fields(c, code), zap.Strings("errors", errs))...)
}
