package reconciliation

import (
	"fmt"

	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"

	"go.uber.org/zap"
)

// Colunas A–I do relatório Cielo.
const (
	cieloPaymentDate = iota
	cieloPostingDate
	cieloDocument
	cieloGross
	cieloNet
	cieloExpectedPayment
	cieloInstallment
	cieloInstallmentTotal
	cieloMerchant
)

// Colunas A–E do relatório de vendas.
const (
	vendasSaleDate = iota
	vendasDocument
	vendasGross
	vendasTerminal
	vendasMerchant
)

func optionalCount(cell string) *int {
	n, ok := spreadsheet.ParseCount(cell)
	if !ok {
		return nil
	}
	return &n
}

// parseAcquirerRow converte uma linha do relatório Cielo. Valores ilegíveis só
// são erro quando a linha tem data de lançamento, pois só essas entram na conciliação.
func parseAcquirerRow(row spreadsheet.Row) (domain.AcquirerRecord, error) {
	rec := domain.AcquirerRecord{
		Line:            row.Line,
		PaymentDate:     spreadsheet.ParseOptionalDate(row.Cell(cieloPaymentDate)),
		PostingDate:     spreadsheet.ParseOptionalDate(row.Cell(cieloPostingDate)),
		Document:        spreadsheet.NormalizeIdentifier(row.Cell(cieloDocument)),
		ExpectedPayment: spreadsheet.ParseOptionalDate(row.Cell(cieloExpectedPayment)),
		MerchantID:      spreadsheet.NormalizeIdentifier(row.Cell(cieloMerchant)),
	}
	rec.Installment = optionalCount(row.Cell(cieloInstallment))
	rec.InstallmentTotal = optionalCount(row.Cell(cieloInstallmentTotal))

	gross, _, errGross := spreadsheet.ParseDecimal(row.Cell(cieloGross))
	net, _, errNet := spreadsheet.ParseDecimal(row.Cell(cieloNet))
	if rec.PostingDate != nil {
		if errGross != nil {
			return rec, fmt.Errorf("valor bruto: %w", errGross)
		}
		if errNet != nil {
			return rec, fmt.Errorf("valor líquido: %w", errNet)
		}
	}
	rec.Gross, rec.Net = gross, net
	return rec, nil
}

// parseSalesRow converte uma linha do relatório de vendas.
func parseSalesRow(row spreadsheet.Row) (domain.SalesRecord, error) {
	rec := domain.SalesRecord{
		Line:       row.Line,
		SaleDate:   spreadsheet.ParseOptionalDate(row.Cell(vendasSaleDate)),
		Document:   spreadsheet.NormalizeIdentifier(row.Cell(vendasDocument)),
		Terminal:   spreadsheet.NormalizeIdentifier(row.Cell(vendasTerminal)),
		MerchantID: spreadsheet.NormalizeIdentifier(row.Cell(vendasMerchant)),
	}

	gross, _, err := spreadsheet.ParseDecimal(row.Cell(vendasGross))
	if err != nil && rec.SaleDate != nil {
		return rec, fmt.Errorf("valor bruto: %w", err)
	}
	rec.Gross = gross
	return rec, nil
}

// carregarCielo lê os arquivos na ordem recebida, preservando a ordem das linhas.
func (s *service) carregarCielo(sources []spreadsheet.Source) ([]domain.AcquirerRecord, error) {
	var records []domain.AcquirerRecord
	for _, src := range sources {
		rows, err := spreadsheet.ReadRows(src)
		if err != nil {
			return nil, &domain.ReadError{File: src.Name, Err: err}
		}
		for _, row := range rows {
			rec, err := parseAcquirerRow(row)
			if err != nil {
				return nil, &domain.ReadError{File: src.Name, Line: row.Line, Err: err}
			}
			records = append(records, rec)
		}
		s.logger.Debug("arquivo Cielo lido", zap.String("arquivo", src.Name), zap.Int("linhas", len(rows)))
	}
	return records, nil
}

// carregarVendas lê os relatórios de vendas na ordem recebida.
func (s *service) carregarVendas(sources []spreadsheet.Source) ([]domain.SalesRecord, error) {
	var records []domain.SalesRecord
	for _, src := range sources {
		rows, err := spreadsheet.ReadRows(src)
		if err != nil {
			return nil, &domain.ReadError{File: src.Name, Err: err}
		}
		for _, row := range rows {
			rec, err := parseSalesRow(row)
			if err != nil {
				return nil, &domain.ReadError{File: src.Name, Line: row.Line, Err: err}
			}
			records = append(records, rec)
		}
		s.logger.Debug("arquivo de vendas lido", zap.String("arquivo", src.Name), zap.Int("linhas", len(rows)))
	}
	return records, nil
}
