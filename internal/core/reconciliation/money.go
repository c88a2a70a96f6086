package reconciliation

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents arredonda o valor para 2 casas com meio para cima (afastando do zero,
// nunca meio para o par) e devolve o inteiro em centavos.
func ToCents(v decimal.Decimal) int64 {
	return v.Round(2).Mul(hundred).IntPart()
}
