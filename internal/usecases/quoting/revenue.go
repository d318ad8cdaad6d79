package quoting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

// ProjectRevenue estima a receita mensal que o cliente obtém com Kenlo Pay e Kenlo Seguros.
// O ganho líquido depende dos totais da cotação e é calculado pelo motor.
func ProjectRevenue(in domain.QuoteInput, cfg *domain.PricingConfiguration, plans []SelectedPlan) (domain.RevenueProjection, error) {
	projection := domain.RevenueProjection{
		BoletoRevenue:    decimal.Zero,
		InsuranceRevenue: decimal.Zero,
		Cash:             domain.CashProjection{MonthlyPotential: decimal.Zero},
	}

	contracts := decimal.NewFromInt(in.Usage.Contracts)
	hasLocacao := in.Product.Includes(domain.ProductLocacao)

	if in.HasAddon(domain.AddonPay) && hasLocacao {
		perContract := decimal.Zero
		if in.Payments.ChargesBoletoToTenant {
			perContract = perContract.Add(in.Payments.BoletoAmount)
		}
		if in.Payments.ChargesSplitToOwner {
			perContract = perContract.Add(in.Payments.SplitAmount)
		}
		projection.BoletoRevenue = contracts.Mul(perContract)
	}

	if in.HasAddon(domain.AddonSeguros) {
		revenue, err := insuranceRevenue(in, cfg, plans)
		if err != nil {
			return domain.RevenueProjection{}, err
		}
		projection.InsuranceRevenue = revenue
	}

	rent := in.Insurance.AverageRent
	if in.HasAddon(domain.AddonCash) && in.Usage.Contracts > 0 && rent != nil && rent.IsPositive() {
		projection.Cash = domain.CashProjection{
			Computable:       true,
			MonthlyPotential: contracts.Mul(*rent).Mul(cfg.Revenue.CashPotentialRate),
		}
	}

	return projection, nil
}

// insuranceRevenue usa a tabela de comissão por faixas quando o aluguel médio é informado,
// senão a comissão fixa por contrato.
func insuranceRevenue(in domain.QuoteInput, cfg *domain.PricingConfiguration, plans []SelectedPlan) (decimal.Decimal, error) {
	rent := in.Insurance.AverageRent
	if rent == nil {
		return decimal.NewFromInt(in.Usage.Contracts).Mul(cfg.Revenue.FlatInsuranceCommissionPerContract), nil
	}

	table, err := variableCostTable(cfg, domain.ResourceInsurance)
	if err != nil {
		return decimal.Zero, err
	}
	tier, ok := tierForScope(table.Product, plans)
	if !ok {
		return decimal.Zero, nil
	}

	path := "variableCosts.insurance.tiers." + string(tier)
	tiers, err := tiersFor(table, path, tier)
	if err != nil {
		return decimal.Zero, err
	}
	commission, err := computeTiers(path, in.Usage.Contracts, tiers, *rent, true)
	if err != nil {
		return decimal.Zero, err
	}

	return commission.Total, nil
}
