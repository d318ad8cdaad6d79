package utils

import "github.com/shopspring/decimal"

// RoundCurrency arredonda um valor monetário para unidades inteiras de moeda
func RoundCurrency(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}

	return d.Round(0).InexactFloat64()
}

func RoundWithTwoDecimalPlace(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}

	return d.Round(2).InexactFloat64()
}
