// Package merchant identifica o estabelecimento de um relatório Cielo e os
// códigos de roteamento contábil que dele dependem.
package merchant

import (
	"fmt"
	"sort"

	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"

	"github.com/schollz/closestmatch"
)

// MerchantColumn é a coluna (I) que traz o código do estabelecimento no relatório Cielo.
const MerchantColumn = 8

// routingTable mapeia o código do estabelecimento na Cielo para os códigos de roteamento.
var routingTable = map[string]domain.MerchantRouting{
	"1049143393": {MerchantID: "1049143393", Name: "Loja SELS", AccountingCode: "1", ControlCode: "5112"},
	"2889751230": {MerchantID: "2889751230", Name: "Loja SELS", AccountingCode: "6", ControlCode: "5112"},
	"1030032510": {MerchantID: "1030032510", Name: "FAAMA", AccountingCode: "5", ControlCode: "5124"},
	"1109206094": {MerchantID: "1109206094", Name: "FAAMA", AccountingCode: "6", ControlCode: "5124"},
	"2809433369": {MerchantID: "2809433369", Name: "FAAMA", AccountingCode: "1", ControlCode: "5124"},
}

// Classifier resolve o estabelecimento a partir do primeiro arquivo Cielo.
type Classifier interface {
	Classify(first spreadsheet.Source) (domain.MerchantRouting, error)
	Resolve(merchantID string) (domain.MerchantRouting, error)
}

type classifier struct {
	table map[string]domain.MerchantRouting
	known []string
	cm    *closestmatch.ClosestMatch
}

// NewClassifier cria um classificador sobre a tabela de estabelecimentos conhecidos.
func NewClassifier() Classifier {
	return newClassifier(routingTable)
}

func newClassifier(table map[string]domain.MerchantRouting) *classifier {
	known := knownIDs(table)
	return &classifier{
		table: table,
		known: known,
		cm:    closestmatch.New(known, []int{2, 3}),
	}
}

// Classify lê a coluna I da primeira linha de dados do arquivo.
func (c *classifier) Classify(first spreadsheet.Source) (domain.MerchantRouting, error) {
	rows, err := spreadsheet.ReadRows(first)
	if err != nil {
		return domain.MerchantRouting{}, &domain.ReadError{File: first.Name, Err: err}
	}
	if len(rows) == 0 {
		return domain.MerchantRouting{}, fmt.Errorf("%w: o primeiro arquivo Cielo está vazio ou o formato está incorreto", domain.ErrEmptyInput)
	}
	return c.Resolve(rows[0].Cell(MerchantColumn))
}

// Resolve consulta a tabela pelo código do estabelecimento.
func (c *classifier) Resolve(merchantID string) (domain.MerchantRouting, error) {
	id := spreadsheet.NormalizeIdentifier(merchantID)
	if routing, ok := c.table[id]; ok {
		return routing, nil
	}
	if id == "" {
		return domain.MerchantRouting{}, fmt.Errorf("%w: célula vazia", domain.ErrUnrecognizedMerchant)
	}
	if hint := c.cm.Closest(id); hint != "" {
		return domain.MerchantRouting{}, fmt.Errorf("%w: %s (mais próximo: %s)", domain.ErrUnrecognizedMerchant, id, hint)
	}
	return domain.MerchantRouting{}, fmt.Errorf("%w: %s", domain.ErrUnrecognizedMerchant, id)
}

// Known devolve os códigos de estabelecimento conhecidos, ordenados.
func Known() []string {
	return knownIDs(routingTable)
}

func knownIDs(table map[string]domain.MerchantRouting) []string {
	known := make([]string, 0, len(table))
	for id := range table {
		known = append(known, id)
	}
	sort.Strings(known)
	return known
}
