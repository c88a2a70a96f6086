package spreadsheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ---------------------- texto ----------------------

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeText remove acentos, passa para maiúsculas e colapsa pontuação em espaços.
func NormalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// IsTitleRow reconhece a linha de títulos das colunas ("Data de pagamento", ...):
// a primeira célula é texto e não é uma data.
func IsTitleRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.TrimSpace(row[0])
	if first == "" {
		return false
	}
	if _, ok := ParseDate(first); ok {
		return false
	}
	return strings.IndexFunc(NormalizeText(first), unicode.IsLetter) >= 0
}

// ---------------------- datas ----------------------

var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"02/01/06",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate interpreta a célula como data com o dia primeiro. Aceita também o
// número serial do Excel, que é o valor cru de células formatadas como data.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// 1 = 1900-01-01; 2958465 = 9999-12-31
		if f >= 1 && f < 2958466 {
			return excelSerialToDate(f), true
		}
	}
	return time.Time{}, false
}

// ParseOptionalDate devolve nil quando a célula não contém uma data válida.
func ParseOptionalDate(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

func excelSerialToDate(serial float64) time.Time {
	// base Excel serial -> 1899-12-30
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	days := int64(serial)
	frac := serial - float64(days)
	t := base.AddDate(0, 0, int(days))
	return t.Add(time.Duration(frac*24*float64(time.Hour) + 0.5)).Truncate(time.Second)
}

// ---------------------- números ----------------------

// ParseDecimal lê um valor monetário sem passar por ponto flutuante. Aceita o
// valor cru do Excel ("1234.5", "1E-2") e texto no formato brasileiro
// ("R$ 1.234,56", "(10,00)"). Célula vazia devolve ok=false e nenhum erro.
func ParseDecimal(val string) (d decimal.Decimal, ok bool, err error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return decimal.Zero, false, nil
	}
	// números crus do Excel podem vir com 17 dígitos ("1.0049999999999999");
	// a forma mais curta do mesmo double é o valor exibido na planilha
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return decimal.NewFromFloat(f), true, nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true, nil
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero, false, nil
	}

	// tratar sinais/parenteses
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	// a última ocorrência entre . e , decide qual é o separador decimal
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") > 1 {
		parts := strings.Split(s, ".")
		s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}
	s = strings.ReplaceAll(s, ",", "")

	d, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("valor numérico inválido %q", val)
	}
	if neg {
		d = d.Neg()
	}
	return d, true, nil
}

// ParseCount lê contagens como número de parcelas; valores fracionários são truncados.
func ParseCount(val string) (int, bool) {
	d, ok, err := ParseDecimal(val)
	if err != nil || !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// NormalizeIdentifier converte identificadores numéricos que o Excel guardou
// como número ("123.0", "1.049143393E9") para a forma inteira. Texto e
// inteiros simples são mantidos como estão, inclusive zeros à esquerda.
func NormalizeIdentifier(val string) string {
	s := strings.TrimSpace(val)
	if s == "" || !strings.ContainsAny(s, ".eE") {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.Truncate(0).String()
}
