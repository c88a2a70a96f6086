// Package reconciliation concilia os relatórios Cielo com o relatório de vendas
// e gera as linhas de importação contábil agrupadas por dia.
package reconciliation

import (
	"fmt"

	"conciliacao-service/internal/core/merchant"
	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"

	"go.uber.org/zap"
)

// Service define a interface do motor de conciliação.
type Service interface {
	Reconcile(period domain.Period, cielo []spreadsheet.Source, vendas []spreadsheet.Source) (*domain.Result, error)
}

type service struct {
	classifier merchant.Classifier
	logger     *zap.Logger
}

// NewService cria uma nova instância do serviço de conciliação.
func NewService(classifier merchant.Classifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{classifier: classifier, logger: logger}
}

// Reconcile identifica o estabelecimento pelo primeiro arquivo Cielo, lê todos
// os arquivos e monta os lotes diários do período. Quando nada cai no
// intervalo devolve domain.ErrNoRecordsInRange, que não é uma falha de processamento.
func (s *service) Reconcile(period domain.Period, cielo []spreadsheet.Source, vendas []spreadsheet.Source) (*domain.Result, error) {
	if len(cielo) == 0 {
		return nil, fmt.Errorf("%w: nenhum arquivo Cielo selecionado", domain.ErrEmptyInput)
	}

	routing, err := s.classifier.Classify(cielo[0])
	if err != nil {
		return nil, err
	}

	acquirer, err := s.carregarCielo(cielo)
	if err != nil {
		return nil, err
	}
	sales, err := s.carregarVendas(vendas)
	if err != nil {
		return nil, err
	}

	buckets := BuildBuckets(period, routing, acquirer, sales)
	if len(buckets) == 0 {
		s.logger.Info("nenhum registro no intervalo",
			zap.Time("inicio", period.Start), zap.Time("fim", period.End))
		return nil, domain.ErrNoRecordsInRange
	}

	result := &domain.Result{Period: period, Routing: routing, Buckets: buckets}
	s.logger.Info("conciliação concluída",
		zap.String("estabelecimento", routing.MerchantID),
		zap.Int("registros_cielo", len(acquirer)),
		zap.Int("registros_vendas", len(sales)),
		zap.Int("dias", len(buckets)),
		zap.Int("linhas", result.LineCount()),
	)
	return result, nil
}
