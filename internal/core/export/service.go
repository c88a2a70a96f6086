// Package export transforma o resultado da conciliação nos arquivos CSV de
// importação contábil, diários ou consolidado.
package export

import (
	"fmt"

	"conciliacao-service/internal/domain"

	"go.uber.org/zap"
)

// File é um arquivo de saída já codificado.
type File struct {
	Name    string
	Content []byte
}

// Service define a interface de geração dos arquivos de importação.
type Service interface {
	Daily(result *domain.Result) ([]File, error)
	Consolidated(result *domain.Result) (File, error)
	Export(result *domain.Result, consolidated bool) ([]File, error)
}

type service struct {
	controlCode string
	logger      *zap.Logger
}

// NewService cria o serviço de exportação. Se controlCode for informado ele
// substitui o código de controle do estabelecimento em todos os arquivos.
func NewService(controlCode string, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{controlCode: controlCode, logger: logger}
}

// ConsolidatedName devolve o nome do arquivo consolidado do período.
func ConsolidatedName(period domain.Period) string {
	return fmt.Sprintf("intervalo_consolidado_%s_a_%s.csv",
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
}

// DailyName devolve o nome do arquivo de um dia.
func DailyName(bucket domain.DailyBucket) string {
	return bucket.Key() + ".csv"
}

func (s *service) controlRecord(result *domain.Result) []string {
	if s.controlCode != "" {
		return domain.ControlRecord(s.controlCode)
	}
	return domain.ControlRecord(result.Routing.ControlCode)
}

func appendLines(records [][]string, lines []domain.LedgerLine) [][]string {
	for _, line := range lines {
		records = append(records, line.Record())
	}
	return records
}

// Daily gera um arquivo por dia, cada um começando pela linha de controle.
func (s *service) Daily(result *domain.Result) ([]File, error) {
	if result == nil || len(result.Buckets) == 0 {
		return nil, domain.ErrNoRecordsInRange
	}

	files := make([]File, 0, len(result.Buckets))
	for _, bucket := range result.Buckets {
		records := make([][]string, 0, len(bucket.Lines)+1)
		records = append(records, s.controlRecord(result))
		records = appendLines(records, bucket.Lines)

		content, err := encodeCSV(records)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar o arquivo de %s: %w", bucket.Key(), err)
		}
		files = append(files, File{Name: DailyName(bucket), Content: content})
	}

	s.logger.Debug("arquivos diários gerados", zap.Int("arquivos", len(files)))
	return files, nil
}

// Consolidated gera um único arquivo com todos os dias em ordem de data e uma
// só linha de controle.
func (s *service) Consolidated(result *domain.Result) (File, error) {
	if result == nil || len(result.Buckets) == 0 {
		return File{}, domain.ErrNoRecordsInRange
	}

	records := make([][]string, 0, result.LineCount()+1)
	records = append(records, s.controlRecord(result))
	for _, bucket := range result.Buckets {
		records = appendLines(records, bucket.Lines)
	}

	content, err := encodeCSV(records)
	if err != nil {
		return File{}, fmt.Errorf("erro ao gerar o arquivo consolidado: %w", err)
	}

	s.logger.Debug("arquivo consolidado gerado", zap.Int("linhas", len(records)))
	return File{Name: ConsolidatedName(result.Period), Content: content}, nil
}

// Export escolhe o modo de emissão.
func (s *service) Export(result *domain.Result, consolidated bool) ([]File, error) {
	if !consolidated {
		return s.Daily(result)
	}
	file, err := s.Consolidated(result)
	if err != nil {
		return nil, err
	}
	return []File{file}, nil
}
