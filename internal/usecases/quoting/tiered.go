package quoting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

// TieredCost é o resultado do cálculo por faixas marginais
type TieredCost struct {
	Total     decimal.Decimal
	Breakdown []domain.BracketCharge
}

// ValidateTiers confere se a tabela começa em 1 e é contígua e crescente.
// Uma tabela vazia é válida (custo zero). A última faixa pode ter limite: o que
// passar dele é cobrado no preço dela.
func ValidateTiers(path string, tiers []domain.Tier) error {
	for i, tier := range tiers {
		tierPath := fmt.Sprintf("%s[%d]", path, i)

		if (tier.Price == nil) == (tier.Rate == nil) {
			return configError(tierPath, ErrTierPricing)
		}
		if tier.Price != nil && tier.Price.IsNegative() {
			return configError(tierPath, ErrTierPricing)
		}
		if tier.Rate != nil && tier.Rate.IsNegative() {
			return configError(tierPath, ErrTierPricing)
		}
		if tier.From < 1 {
			return configError(tierPath, ErrTierBounds)
		}
		if tier.To != nil && *tier.To < tier.From {
			return configError(tierPath, ErrTierBounds)
		}
		if tier.Unbounded() && i != len(tiers)-1 {
			return configError(tierPath, ErrTierUnbounded)
		}
		if i > 0 && (tier.Price == nil) != (tiers[0].Price == nil) {
			return configError(tierPath, ErrTierKind)
		}

		if i == 0 {
			if tier.From != 1 {
				return configError(tierPath, ErrTierGap)
			}
			continue
		}

		expected := *tiers[i-1].To + 1
		switch {
		case tier.From > expected:
			return configError(tierPath, ErrTierGap)
		case tier.From < expected:
			return configError(tierPath, ErrTierOverlap)
		}
	}

	return nil
}

// ComputeTieredCost distribui o excedente nas faixas de preço fixo, da menor para a maior.
// O excedente além da última faixa é absorvido por ela.
func ComputeTieredCost(overageUnits int64, tiers []domain.Tier) (TieredCost, error) {
	return computeTiers("tiers", overageUnits, tiers, decimal.Zero, false)
}

// ComputeTieredCommission aplica tabelas de percentual sobre um valor base por unidade,
// ex.: comissão de seguro sobre o aluguel médio.
func ComputeTieredCommission(units int64, tiers []domain.Tier, base decimal.Decimal) (TieredCost, error) {
	return computeTiers("tiers", units, tiers, base, true)
}

func computeTiers(path string, units int64, tiers []domain.Tier, base decimal.Decimal, rated bool) (TieredCost, error) {
	result := TieredCost{Total: decimal.Zero, Breakdown: []domain.BracketCharge{}}

	if units < 0 {
		return result, inputError("units", ErrNegativeUsage)
	}

	if err := ValidateTiers(path, tiers); err != nil {
		return result, err
	}

	if len(tiers) > 0 && rated != (tiers[0].Rate != nil) {
		return result, configError(fmt.Sprintf("%s[0]", path), ErrTierKind)
	}

	if units == 0 || len(tiers) == 0 {
		return result, nil
	}

	remaining := units
	for i, tier := range tiers {
		if remaining == 0 {
			break
		}

		inBracket := remaining
		if tier.To != nil && i != len(tiers)-1 {
			inBracket = min(remaining, *tier.To-tier.From+1)
		}

		charge := domain.BracketCharge{
			From:  tier.From,
			To:    tier.To,
			Units: inBracket,
		}

		quantity := decimal.NewFromInt(inBracket)
		if rated {
			rate := *tier.Rate
			charge.Rate = &rate
			charge.Amount = quantity.Mul(base).Mul(rate)
		} else {
			price := *tier.Price
			charge.UnitPrice = &price
			charge.Amount = quantity.Mul(price)
		}

		result.Total = result.Total.Add(charge.Amount)
		result.Breakdown = append(result.Breakdown, charge)
		remaining -= inBracket
	}

	return result, nil
}
