package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// PreambleRows é o número de linhas de cabeçalho do relatório antes da tabela.
const PreambleRows = 9

// Source identifica um arquivo de entrada e sabe abri-lo sob demanda, de modo
// que o arquivo fica aberto apenas durante a leitura.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource cria uma Source para um arquivo em disco.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource cria uma Source a partir de um conteúdo já em memória.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Row é uma linha de dados com o número da linha original na planilha (base 1).
type Row struct {
	Line  int
	Cells []string
}

// Cell devolve a célula da coluna idx (base 0) já sem espaços, ou "" se não existir.
func (r Row) Cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

func (r Row) empty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadRows abre a fonte, lê a primeira planilha e devolve as linhas de dados
// (sem o preâmbulo, sem a linha de títulos e sem linhas totalmente vazias).
func ReadRows(src Source) ([]Row, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("não foi possível abrir o arquivo: %w", err)
	}
	defer rc.Close()

	rows, err := Load(rc)
	if err != nil {
		return nil, err
	}
	return DataRows(rows, PreambleRows), nil
}

// DataRows descarta as primeiras `preamble` linhas e, se a linha seguinte for a
// de títulos das colunas, também a descarta.
func DataRows(rows [][]string, preamble int) []Row {
	if len(rows) <= preamble {
		return nil
	}

	start := preamble
	if IsTitleRow(rows[start]) {
		start++
	}

	var data []Row
	for i := start; i < len(rows); i++ {
		row := Row{Line: i + 1, Cells: rows[i]}
		if row.empty() {
			continue
		}
		data = append(data, row)
	}
	return data
}

// Load lê a primeira planilha de um arquivo .xlsx ou, em último caso, .xls.
// Os valores numéricos são devolvidos crus (sem a formatação da célula).
func Load(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	// tenta xlsx
	f, errX := excelize.OpenReader(bytes.NewReader(data))
	if errX == nil {
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("o arquivo .xlsx não contém planilhas")
		}
		return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	}

	// tenta xls
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("formato de planilha não suportado: %w", errX)
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var allRows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		allRows = append(allRows, cells)
	}
	return allRows, nil
}
