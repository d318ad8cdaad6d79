package quoting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

func tierPtr(t domain.PlanTier) *domain.PlanTier {
	return &t
}

func priceTier(from int64, to *int64, price string) domain.Tier {
	return domain.Tier{From: from, To: to, Price: decPtr(price)}
}

func rateTier(from int64, to *int64, rate string) domain.Tier {
	return domain.Tier{From: from, To: to, Rate: decPtr(rate)}
}

func samePerPlan[T any](v T) domain.PerPlan[T] {
	return domain.PerPlan[T]{Prime: v, K: v, K2: v}
}

func leadsTiers() []domain.Tier {
	return []domain.Tier{
		priceTier(1, int64Ptr(200), "2.00"),
		priceTier(201, int64Ptr(350), "1.80"),
		priceTier(351, int64Ptr(1000), "1.50"),
	}
}

func boletosTiers() []domain.Tier {
	return []domain.Tier{
		priceTier(1, int64Ptr(250), "4.00"),
		priceTier(251, int64Ptr(500), "3.50"),
		priceTier(501, nil, "3.00"),
	}
}

func cycle(months, installments int, op domain.FormulaOperation, value string) domain.PaymentCycle {
	return domain.PaymentCycle{
		Label:           string(op),
		Months:          months,
		MaxInstallments: installments,
		Formula:         domain.CycleFormula{Operation: op, Value: dec(value)},
	}
}

func basePlan(label, price, implementation string, units ...domain.IncludedUnit) domain.BasePlan {
	return domain.BasePlan{
		Label:          label,
		AnnualPrice:    dec(price),
		Implementation: dec(implementation),
		IncludedUnits:  units,
	}
}

// testConfig monta uma configuração pequena, com valores redondos para facilitar as contas
func testConfig() *domain.PricingConfiguration {
	return &domain.PricingConfiguration{
		Version: "test-1",
		Cycles: domain.Cycles{
			Monthly:    cycle(1, 1, domain.FormulaMultiply, "1.25"),
			Semiannual: cycle(6, 2, domain.FormulaMultiply, "1.125"),
			Annual:     cycle(12, 3, domain.FormulaMultiply, "1"),
			Biennial:   cycle(24, 6, domain.FormulaMultiply, "0.875"),
		},
		BasePlans: domain.BasePlans{
			Imob: domain.PerPlan[domain.BasePlan]{
				Prime: basePlan("Imob Prime", "200", "1000", domain.IncludedUnit{Type: domain.ResourceUsers, Quantity: 2}),
				K:     basePlan("Imob K", "500", "1000", domain.IncludedUnit{Type: domain.ResourceUsers, Quantity: 5}),
				K2:    basePlan("Imob K2", "1000", "1000", domain.IncludedUnit{Type: domain.ResourceUsers, Quantity: 10}),
			},
			Locacao: domain.PerPlan[domain.BasePlan]{
				Prime: basePlan("Locação Prime", "200", "1000", domain.IncludedUnit{Type: domain.ResourceContracts, Quantity: 100}),
				K:     basePlan("Locação K", "500", "1000", domain.IncludedUnit{Type: domain.ResourceContracts, Quantity: 200}),
				K2: basePlan("Locação K2", "1000", "1000",
					domain.IncludedUnit{Type: domain.ResourceContracts, Quantity: 500},
					domain.IncludedUnit{Type: domain.ResourceBoletos, Quantity: 10},
				),
			},
		},
		Addons: domain.Addons{
			Leads: domain.Addon{
				Label: "Leads", AnnualPrice: dec("100"), Implementation: dec("500"),
				Availability: []domain.ProductType{domain.ProductImob},
			},
			Inteligencia: domain.Addon{
				Label: "Inteligência", AnnualPrice: dec("300"), Implementation: dec("0"),
				Availability: []domain.ProductType{domain.ProductImob, domain.ProductLocacao},
				Shareable:    true,
			},
			Assinatura: domain.Addon{
				Label: "Assinatura", AnnualPrice: dec("50"), Implementation: dec("0"),
				IncludedUnits: []domain.IncludedUnit{{Type: domain.ResourceSignatures, Quantity: 15}},
				Availability:  []domain.ProductType{domain.ProductImob, domain.ProductLocacao},
			},
			Pay: domain.Addon{
				Label: "Pay", AnnualPrice: dec("0"), Implementation: dec("0"),
				Availability: []domain.ProductType{domain.ProductLocacao},
			},
			Seguros: domain.Addon{
				Label: "Seguros", AnnualPrice: dec("0"), Implementation: dec("0"),
				Availability: []domain.ProductType{domain.ProductLocacao},
			},
			Cash: domain.Addon{
				Label: "Cash", AnnualPrice: dec("0"), Implementation: dec("0"),
				Availability: []domain.ProductType{domain.ProductLocacao},
			},
		},
		PremiumServices: domain.PremiumServices{
			Recurring: domain.RecurringServices{
				VIPSupport: domain.RecurringService{
					Label:         "Suporte VIP",
					MonthlyPrice:  decPtr("97"),
					DefaultByPlan: domain.PerPlan[bool]{Prime: false, K: false, K2: true},
				},
				DedicatedCS: domain.RecurringService{
					Label:         "CS Dedicado",
					MonthlyPrice:  decPtr("197"),
					DefaultByPlan: domain.PerPlan[bool]{Prime: false, K: false, K2: true},
				},
			},
			NonRecurring: domain.NonRecurringServices{
				OnlineTraining: domain.NonRecurringService{
					Label:                  "Treinamento online",
					UnitPrice:              dec("300"),
					IncludedQuantityByPlan: domain.PerPlan[int64]{Prime: 0, K: 1, K2: 2},
					DuplicationRule:        domain.DuplicationPerProduct,
				},
				PresentialTraining: domain.NonRecurringService{
					Label:                  "Treinamento presencial",
					UnitPrice:              dec("1000"),
					IncludedQuantityByPlan: domain.PerPlan[int64]{Prime: 0, K: 0, K2: 1},
					DuplicationRule:        domain.DuplicationPerProduct,
				},
			},
		},
		Kombos: map[string]domain.Kombo{
			"imob-start": {
				Label:               "Imob Start",
				Discount:            dec("0.10"),
				ProductsIncluded:    []domain.ProductType{domain.ProductImob},
				AddonsIncluded:      []domain.AddonKey{domain.AddonLeads},
				FreeImplementations: []string{"leads"},
				DiscountOrder:       2,
			},
			"core-gestao": {
				Label:               "Core Gestão",
				Discount:            dec("0.20"),
				ProductsIncluded:    []domain.ProductType{domain.ProductImob, domain.ProductLocacao},
				AddonsIncluded:      []domain.AddonKey{},
				FreeImplementations: []string{"imob"},
				DiscountOrder:       2,
			},
			"elite": {
				Label:            "Elite",
				Discount:         dec("0.20"),
				ProductsIncluded: []domain.ProductType{domain.ProductImob, domain.ProductLocacao},
				AddonsIncluded:   []domain.AddonKey{domain.AddonInteligencia},
				IncludesPremium:  true,
				DiscountOrder:    2,
			},
		},
		VariableCosts: domain.VariableCosts{
			Users: domain.VariableCostTable{
				Label: "Usuários adicionais", Product: domain.CostScopeImob, Unit: "user", UnitLabel: "usuário",
				Tiers: samePerPlan([]domain.Tier{priceTier(1, int64Ptr(10), "50"), priceTier(11, nil, "40")}),
			},
			Contracts: domain.VariableCostTable{
				Label: "Contratos adicionais", Product: domain.CostScopeLocacao, Unit: "contract", UnitLabel: "contrato",
				Tiers: samePerPlan([]domain.Tier{priceTier(1, nil, "3")}),
			},
			Leads: domain.VariableCostTable{
				Label: "Leads", Product: domain.CostScopeImob, Unit: "lead", UnitLabel: "lead",
				Tiers: samePerPlan(leadsTiers()),
			},
			Signatures: domain.VariableCostTable{
				Label: "Assinaturas", Product: domain.CostScopeShared, Unit: "signature", UnitLabel: "assinatura",
				Tiers: samePerPlan([]domain.Tier{priceTier(1, nil, "2")}),
			},
			Boletos: domain.VariableCostTable{
				Label: "Boletos", Product: domain.CostScopeLocacao, Unit: "boleto", UnitLabel: "boleto",
				Tiers: samePerPlan(boletosTiers()),
			},
			Splits: domain.VariableCostTable{
				Label: "Splits", Product: domain.CostScopeLocacao, Unit: "split", UnitLabel: "split",
				Tiers: samePerPlan([]domain.Tier{priceTier(1, nil, "1")}),
			},
			Insurance: domain.VariableCostTable{
				Label: "Comissão de seguros", Product: domain.CostScopeLocacao, Unit: "contract", UnitLabel: "contrato",
				Tiers: samePerPlan([]domain.Tier{rateTier(1, int64Ptr(100), "0.01"), rateTier(101, nil, "0.02")}),
			},
		},
		Revenue: domain.RevenueAssumptions{
			FlatInsuranceCommissionPerContract: dec("10"),
			CashPotentialRate:                  dec("0.005"),
		},
	}
}

func imobInput(tier domain.PlanTier) domain.QuoteInput {
	return domain.QuoteInput{
		Product: domain.ProductImob,
		Plans:   domain.PlanSelection{Imob: tierPtr(tier)},
		CycleID: domain.CycleAnnual,
	}
}

func bothInput(imob, locacao domain.PlanTier) domain.QuoteInput {
	return domain.QuoteInput{
		Product: domain.ProductBoth,
		Plans:   domain.PlanSelection{Imob: tierPtr(imob), Locacao: tierPtr(locacao)},
		CycleID: domain.CycleAnnual,
	}
}
