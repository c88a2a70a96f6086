// Package spreadsheettest monta planilhas .xlsx em memória no layout dos
// relatórios Cielo e Vendas, para uso em testes.
package spreadsheettest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook grava as linhas informadas a partir de A1 e devolve o .xlsx em bytes.
func Workbook(t testing.TB, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("coordenada inválida: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("falha ao gravar linha %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("falha ao gerar xlsx: %v", err)
	}
	return buf.Bytes()
}

// Report monta um relatório com as 9 linhas de preâmbulo, a linha de títulos e os dados.
func Report(t testing.TB, titles []string, data [][]interface{}) []byte {
	t.Helper()

	rows := make([][]interface{}, 0, 10+len(data))
	for i := 1; i <= 9; i++ {
		rows = append(rows, []interface{}{fmt.Sprintf("Cabeçalho do relatório %d", i)})
	}
	titleRow := make([]interface{}, len(titles))
	for i, title := range titles {
		titleRow[i] = title
	}
	rows = append(rows, titleRow)
	rows = append(rows, data...)
	return Workbook(t, rows)
}

// CieloTitles são os títulos das colunas A–I do relatório Cielo.
var CieloTitles = []string{
	"Data de pagamento", "Data do lançamento", "NSU/DOC", "Valor bruto", "Valor líquido",
	"Data prevista de pagamento", "Número da parcela", "Quantidade total de parcelas", "Estabelecimento",
}

// VendasTitles são os títulos das colunas A–E do relatório de vendas.
var VendasTitles = []string{"Data da venda", "NSU/DOC", "Valor bruto", "Número da máquina", "Estabelecimento"}

// Cielo monta um relatório Cielo com as linhas de dados informadas.
func Cielo(t testing.TB, data ...[]interface{}) []byte {
	t.Helper()
	return Report(t, CieloTitles, data)
}

// Vendas monta um relatório de vendas com as linhas de dados informadas.
func Vendas(t testing.TB, data ...[]interface{}) []byte {
	t.Helper()
	return Report(t, VendasTitles, data)
}

// WithFloat regrava uma célula da primeira planilha como número com a precisão
// informada, como o Excel faz ao salvar células calculadas.
func WithFloat(t testing.TB, data []byte, cell string, value float64, precision int) []byte {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("falha ao abrir xlsx: %v", err)
	}
	defer f.Close()

	if err := f.SetCellFloat(f.GetSheetName(0), cell, value, precision, 64); err != nil {
		t.Fatalf("falha ao gravar %s: %v", cell, err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("falha ao gerar xlsx: %v", err)
	}
	return buf.Bytes()
}
