// cmd/conciliacao/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"conciliacao-service/internal/api"
	"conciliacao-service/internal/api/handlers"
	"conciliacao-service/internal/api/responses"
	"conciliacao-service/internal/config"
	"conciliacao-service/internal/core/export"
	"conciliacao-service/internal/core/merchant"
	"conciliacao-service/internal/core/reconciliation"
	"conciliacao-service/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("conciliacao")
	if err != nil {
		fmt.Printf("Falha ao carregar a configuração: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Application.Env)
	if err != nil {
		fmt.Printf("Falha ao iniciar o logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	responses.InitLogger(log)

	classifier := merchant.NewClassifier()
	conciliacaoService := reconciliation.NewService(classifier, log)
	exportService := export.NewService(cfg.Export.ControlCode, log)
	conciliacaoHandler := handlers.NewConciliacaoHandler(conciliacaoService, exportService, classifier)

	server := api.NewServer(cfg, log, conciliacaoHandler)

	errChan := make(chan error, 1)
	go func() {
		log.Info("🚀 serviço de conciliação iniciado", zap.Int("porta", cfg.Server.Port))
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("sinal de encerramento recebido")
	case err := <-errChan:
		log.Error("erro no servidor HTTP", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("erro ao encerrar o servidor", zap.Error(err))
		return
	}
	log.Info("servidor encerrado")
}
