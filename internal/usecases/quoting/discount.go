package quoting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

var one = decimal.NewFromInt(1)

// DiscountedPrice guarda o preço de uma linha após cada etapa de desconto
type DiscountedPrice struct {
	AfterCycle   decimal.Decimal
	AfterKombo   decimal.Decimal
	KomboApplied bool
}

// ApplyDiscounts aplica o ciclo e depois o kombo, nessa ordem.
// Apenas a fórmula do ciclo é lida; multiplier e discountVsMonthly são informativos.
func ApplyDiscounts(base decimal.Decimal, cycle domain.PaymentCycle, kombo *domain.Kombo, lineKey string) (DiscountedPrice, error) {
	afterCycle, err := applyCycle(base, cycle.Formula)
	if err != nil {
		return DiscountedPrice{}, err
	}

	price := DiscountedPrice{AfterCycle: afterCycle, AfterKombo: afterCycle}
	if kombo != nil && kombo.Covers(lineKey) {
		price.AfterKombo = afterCycle.Mul(one.Sub(kombo.Discount))
		price.KomboApplied = true
	}

	return price, nil
}

func applyCycle(base decimal.Decimal, formula domain.CycleFormula) (decimal.Decimal, error) {
	switch formula.Operation {
	case domain.FormulaMultiply:
		return base.Mul(formula.Value), nil
	case domain.FormulaDiscount:
		return base.Mul(one.Sub(formula.Value)), nil
	case domain.FormulaAdd:
		return base.Add(formula.Value), nil
	}
	return decimal.Zero, configError("cycles.formula.operation", ErrInvalidCycle)
}

// ImplementationFee retorna a taxa de implantação da linha, zerada quando o kombo a isenta
func ImplementationFee(fee decimal.Decimal, kombo *domain.Kombo, lineKey string) (decimal.Decimal, bool) {
	if kombo != nil && kombo.WaivesImplementation(lineKey) {
		return decimal.Zero, true
	}
	return fee, false
}
