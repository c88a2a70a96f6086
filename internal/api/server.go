// Package api monta o roteador gin e o servidor HTTP do serviço de conciliação.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"conciliacao-service/internal/api/handlers"
	"conciliacao-service/internal/api/middleware"
	"conciliacao-service/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server encapsula o roteador e o http.Server.
type Server struct {
	logger     *zap.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// NewServer cria o servidor HTTP com as rotas da conciliação.
func NewServer(cfg *config.Config, logger *zap.Logger, conciliacao *handlers.ConciliacaoHandler) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/conciliacao/vendas", limitBody(cfg.Upload.MaxBytes()), conciliacao.HandleVendas)
		apiV1.GET("/conciliacao/estabelecimentos", conciliacao.HandleEstabelecimentos)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": cfg.Application.Name})
	})

	return &Server{
		logger:     logger,
		httpRouter: router,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// limitBody recusa corpos maiores que o limite de upload configurado.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// Handler devolve o roteador, útil em testes.
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start escuta até o servidor ser encerrado.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("falha ao iniciar o servidor HTTP: %w", err)
	}
	return nil
}

// Stop encerra o servidor aguardando as requisições em andamento.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("encerrando servidor HTTP")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("falha ao encerrar o servidor HTTP: %w", err)
	}
	return nil
}
