// package domain/models.go
package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// --- Modelos de entrada ---

// AcquirerRecord representa uma linha do relatório de recebíveis da Cielo.
// Datas ausentes ou ilegíveis ficam nil.
type AcquirerRecord struct {
	Line             int
	PaymentDate      *time.Time
	PostingDate      *time.Time
	Document         string
	Gross            decimal.Decimal
	Net              decimal.Decimal
	ExpectedPayment  *time.Time
	Installment      *int // nil quando a célula está vazia
	InstallmentTotal *int
	MerchantID       string
}

// SalesRecord representa uma linha do relatório de vendas do PDV.
type SalesRecord struct {
	Line       int
	SaleDate   *time.Time
	Document   string
	Gross      decimal.Decimal
	Terminal   string
	MerchantID string
}

// MerchantRouting guarda os códigos derivados do estabelecimento:
// AccountingCode vai na coluna B das linhas de liquidação e ControlCode
// na linha de controle que abre cada arquivo exportado.
type MerchantRouting struct {
	MerchantID     string
	Name           string
	AccountingCode string
	ControlCode    string
}

// --- Modelos de saída ---

// LedgerLine representa uma linha do arquivo de importação contábil.
type LedgerLine struct {
	Account     string
	Routing     string
	ClassA      string
	ClassB      string
	SubCode     string
	AmountCents int64
	Flag        string
	Description string
}

// Record devolve as oito colunas da linha na ordem do layout de importação.
func (l LedgerLine) Record() []string {
	return []string{
		l.Account,
		l.Routing,
		l.ClassA,
		l.ClassB,
		l.SubCode,
		strconv.FormatInt(l.AmountCents, 10),
		l.Flag,
		l.Description,
	}
}

// ControlRecord monta a linha de controle: o código no primeiro campo e sete campos vazios.
func ControlRecord(code string) []string {
	return []string{code, "", "", "", "", "", "", ""}
}

// DailyBucket agrupa as linhas contábeis geradas para uma data.
type DailyBucket struct {
	Date  time.Time
	Lines []LedgerLine
}

// Key devolve a data do lote no formato YYYY-MM-DD.
func (b DailyBucket) Key() string {
	return b.Date.Format("2006-01-02")
}

// Result é o produto de uma conciliação: o roteamento do estabelecimento e os
// lotes diários em ordem crescente de data.
type Result struct {
	Period  Period
	Routing MerchantRouting
	Buckets []DailyBucket
}

// LineCount soma as linhas de todos os lotes.
func (r *Result) LineCount() int {
	total := 0
	for _, b := range r.Buckets {
		total += len(b.Lines)
	}
	return total
}
