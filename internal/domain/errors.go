package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indica que nenhum arquivo Cielo foi enviado ou que o primeiro está vazio.
	ErrEmptyInput = errors.New("nenhum dado de entrada")
	// ErrUnrecognizedMerchant indica um código de estabelecimento fora da tabela conhecida.
	ErrUnrecognizedMerchant = errors.New("código de estabelecimento não reconhecido")
	// ErrReadError indica uma planilha ilegível ou fora do layout esperado.
	ErrReadError = errors.New("erro ao ler arquivos")
	// ErrNoRecordsInRange não é uma falha: nenhum registro caiu no intervalo informado.
	ErrNoRecordsInRange = errors.New("Nenhuma venda encontrada no intervalo informado.")
	// ErrInvalidPeriod indica datas ausentes, mal formatadas ou invertidas.
	ErrInvalidPeriod = errors.New("período inválido")
)

// ReadError descreve a falha de leitura de um arquivo específico.
type ReadError struct {
	File string
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: arquivo %s, linha %d: %v", ErrReadError, e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: arquivo %s: %v", ErrReadError, e.File, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is permite que errors.Is(err, ErrReadError) reconheça qualquer *ReadError.
func (e *ReadError) Is(target error) bool {
	return target == ErrReadError
}
