package reconciliation

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"conciliacao-service/internal/domain"
)

// Contas e códigos fixos do layout de importação.
const (
	contaLiquidacao = "1139008"
	contaComissao   = "4121013"
	contaVendas     = "2139090"

	roteamentoVendas = "4"
	classeA          = "10"
	classeB          = "101"
	subCodigoPadrao  = "0A"
	subCodigoTarifa  = "0E"
	flagPadrao       = "N"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// countOrOne usa 1 apenas quando a parcela não foi informada.
func countOrOne(n *int) string {
	if n == nil {
		return "1"
	}
	return strconv.Itoa(*n)
}

// isSettlementNoise marca linhas sem documento e com líquido negativo, que não são liquidações.
func isSettlementNoise(rec domain.AcquirerRecord) bool {
	return rec.Document == "" && rec.Net.IsNegative()
}

func settlementLine(rec domain.AcquirerRecord, routing domain.MerchantRouting) domain.LedgerLine {
	return domain.LedgerLine{
		Account:     contaLiquidacao,
		Routing:     routing.AccountingCode,
		ClassA:      classeA,
		ClassB:      classeB,
		SubCode:     subCodigoPadrao,
		AmountCents: ToCents(rec.Net),
		Flag:        flagPadrao,
		Description: fmt.Sprintf("Doc.%s - %s - %s/%s",
			rec.Document, formatDate(rec.ExpectedPayment), countOrOne(rec.Installment), countOrOne(rec.InstallmentTotal)),
	}
}

// commissionLine devolve false quando a tarifa (bruto - líquido) é zero.
func commissionLine(rec domain.AcquirerRecord) (domain.LedgerLine, bool) {
	amount := ToCents(rec.Gross.Sub(rec.Net))
	if amount == 0 {
		return domain.LedgerLine{}, false
	}
	return domain.LedgerLine{
		Account:     contaComissao,
		Routing:     "",
		ClassA:      classeA,
		ClassB:      classeB,
		SubCode:     subCodigoTarifa,
		AmountCents: amount,
		Flag:        flagPadrao,
		Description: "Comissão Cartão Cielo - " + formatDate(rec.PostingDate),
	}, true
}

func salesDeductionLine(rec domain.SalesRecord) domain.LedgerLine {
	return domain.LedgerLine{
		Account:     contaVendas,
		Routing:     roteamentoVendas,
		ClassA:      classeA,
		ClassB:      classeB,
		SubCode:     subCodigoPadrao,
		AmountCents: -ToCents(rec.Gross),
		Flag:        flagPadrao,
		Description: fmt.Sprintf("Doc.%s - %s - POS:%s", rec.Document, formatDate(rec.SaleDate), rec.Terminal),
	}
}

// dayLines monta as linhas de um dia: liquidações, depois tarifas, depois vendas.
func dayLines(routing domain.MerchantRouting, acquirer []domain.AcquirerRecord, sales []domain.SalesRecord) []domain.LedgerLine {
	var settlements, commissions []domain.LedgerLine
	for _, rec := range acquirer {
		if isSettlementNoise(rec) {
			continue
		}
		settlements = append(settlements, settlementLine(rec, routing))
		if line, ok := commissionLine(rec); ok {
			commissions = append(commissions, line)
		}
	}

	lines := make([]domain.LedgerLine, 0, len(settlements)+len(commissions)+len(sales))
	lines = append(lines, settlements...)
	lines = append(lines, commissions...)
	for _, rec := range sales {
		lines = append(lines, salesDeductionLine(rec))
	}
	return lines
}

// BuildBuckets filtra os registros pelo período, agrupa por dia e gera os lotes
// em ordem crescente de data. Registros sem data ficam de fora. Um dia com
// movimento gera lote mesmo que todas as suas linhas tenham sido descartadas.
func BuildBuckets(period domain.Period, routing domain.MerchantRouting, acquirer []domain.AcquirerRecord, sales []domain.SalesRecord) []domain.DailyBucket {
	seen := make(map[time.Time]bool)
	var days []time.Time
	addDay := func(d time.Time) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	acquirerByDay := make(map[time.Time][]domain.AcquirerRecord)
	for _, rec := range acquirer {
		if rec.PostingDate == nil || !period.Contains(*rec.PostingDate) {
			continue
		}
		d := domain.Day(*rec.PostingDate)
		acquirerByDay[d] = append(acquirerByDay[d], rec)
		addDay(d)
	}

	salesByDay := make(map[time.Time][]domain.SalesRecord)
	for _, rec := range sales {
		if rec.SaleDate == nil || !period.Contains(*rec.SaleDate) {
			continue
		}
		d := domain.Day(*rec.SaleDate)
		salesByDay[d] = append(salesByDay[d], rec)
		addDay(d)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	buckets := make([]domain.DailyBucket, 0, len(days))
	for _, d := range days {
		buckets = append(buckets, domain.DailyBucket{Date: d, Lines: dayLines(routing, acquirerByDay[d], salesByDay[d])})
	}
	return buckets
}
