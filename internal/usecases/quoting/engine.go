package quoting

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// meteredResource descreve um recurso cobrado por uso. O nível de plano vem do escopo
// da tabela de custo; RequiresAddon vazio significa que o recurso acompanha o produto.
type meteredResource struct {
	Resource      domain.ResourceType
	RequiresAddon domain.AddonKey
	Usage         func(domain.UsageMetrics) int64
}

var meteredResources = []meteredResource{
	{
		Resource: domain.ResourceUsers,
		Usage:    func(u domain.UsageMetrics) int64 { return u.Users },
	},
	{
		Resource: domain.ResourceContracts,
		Usage:    func(u domain.UsageMetrics) int64 { return u.Contracts },
	},
	{
		Resource:      domain.ResourceLeads,
		RequiresAddon: domain.AddonLeads,
		Usage:         func(u domain.UsageMetrics) int64 { return u.LeadsPerMonth },
	},
	{
		Resource:      domain.ResourceSignatures,
		RequiresAddon: domain.AddonAssinatura,
		Usage:         func(u domain.UsageMetrics) int64 { return u.Closings + u.NewContracts },
	},
	{
		Resource:      domain.ResourceBoletos,
		RequiresAddon: domain.AddonPay,
		Usage:         func(u domain.UsageMetrics) int64 { return u.Contracts },
	},
	{
		Resource:      domain.ResourceSplits,
		RequiresAddon: domain.AddonPay,
		Usage:         func(u domain.UsageMetrics) int64 { return u.Contracts },
	},
}

var groupLabels = map[domain.CostScope]string{
	domain.CostScopeImob:    "Add-ons Imob",
	domain.CostScopeLocacao: "Add-ons Locação",
	domain.CostScopeShared:  "Add-ons Compartilhados",
}

// ComputeQuote calcula a cotação completa. É uma função pura de (cfg, in):
// não altera nenhum dos dois e não faz I/O. Qualquer erro aborta o cálculo inteiro.
func ComputeQuote(cfg *domain.PricingConfiguration, in domain.QuoteInput) (*domain.QuoteResult, error) {
	if cfg == nil {
		return nil, configError("config", ErrMissingPlan)
	}

	plans, err := validateInput(&in)
	if err != nil {
		return nil, err
	}
	if err := validateAddonAvailability(cfg, &in); err != nil {
		return nil, err
	}

	cycle, err := resolveCycle(cfg, in.CycleID)
	if err != nil {
		return nil, err
	}

	komboID, kombo, err := resolveKombo(cfg, &in)
	if err != nil {
		return nil, err
	}

	result := &domain.QuoteResult{
		ConfigVersion:   cfg.Version,
		Product:         in.Product,
		CycleID:         in.CycleID,
		KomboID:         komboID,
		MaxInstallments: cycle.MaxInstallments,
	}

	// (1) e (2): licenças e add-ons com ciclo e kombo
	result.LineItems, err = buildLineItems(cfg, &in, plans, cycle, kombo)
	if err != nil {
		return nil, err
	}

	// (3) totais pré-pagos e implantação
	result.LicenseMonthly = decimal.Zero
	result.ImplantationFee = decimal.Zero
	for _, line := range result.LineItems {
		result.LicenseMonthly = result.LicenseMonthly.Add(line.AfterKombo)
		result.ImplantationFee = result.ImplantationFee.Add(line.Implementation)
	}
	result.CycleCharge = result.LicenseMonthly.Mul(decimal.NewFromInt(int64(cycle.Months)))
	result.InstallmentValue = result.CycleCharge.Div(decimal.NewFromInt(int64(cycle.MaxInstallments)))

	// (4) pós-pago
	result.PostPaid, err = buildPostPaid(cfg, &in, plans, result.LineItems, kombo)
	if err != nil {
		return nil, err
	}
	result.PostPaidTotal = result.PostPaid.Total

	// (5) serviços premium
	result.Premium, err = ResolvePremiumServices(cfg.PremiumServices, plans, kombo, in.Premium)
	if err != nil {
		return nil, err
	}
	result.TrainingTotal = result.Premium.OneTimeTotal

	result.TotalMonthly = result.LicenseMonthly.Add(result.Premium.MonthlyTotal)
	result.TotalAnnual = result.TotalMonthly.Mul(monthsPerYear)
	result.FirstYearTotal = result.TotalAnnual.Add(result.ImplantationFee).Add(result.TrainingTotal)

	// (6) receitas
	revenue, err := ProjectRevenue(in, cfg, plans)
	if err != nil {
		return nil, err
	}
	result.RevenueFromBoletos = revenue.BoletoRevenue
	result.RevenueFromInsurance = revenue.InsuranceRevenue
	result.CashRevenue = revenue.Cash
	result.NetGain = revenue.BoletoRevenue.
		Add(revenue.InsuranceRevenue).
		Sub(result.TotalMonthly).
		Sub(result.PostPaidTotal)

	return result, nil
}

func resolveCycle(cfg *domain.PricingConfiguration, id domain.CycleID) (domain.PaymentCycle, error) {
	path := "cycles." + string(id)

	cycle, ok := cfg.Cycles.Get(id)
	if !ok {
		return domain.PaymentCycle{}, configError(path, ErrUnknownCycle)
	}
	if cycle.Months < 1 || cycle.MaxInstallments < 1 {
		return domain.PaymentCycle{}, configError(path, ErrInvalidCycle)
	}

	return cycle, nil
}

// resolveKombo retorna o kombo ativo ou nil. "auto" escolhe o melhor kombo possível.
func resolveKombo(cfg *domain.PricingConfiguration, in *domain.QuoteInput) (string, *domain.Kombo, error) {
	id := in.KomboID
	if id == "" {
		return "", nil, nil
	}

	if id == domain.KomboAuto {
		suggested, ok := SuggestKombo(cfg, *in)
		if !ok {
			return "", nil, nil
		}
		id = suggested
	}

	kombo, ok := cfg.Kombos[id]
	if !ok {
		return "", nil, inputError("komboId", ErrUnknownKombo)
	}
	if err := checkKombo("kombos."+id, kombo); err != nil {
		return "", nil, err
	}
	if !komboSatisfied(kombo, in) {
		return "", nil, inputError("komboId", ErrKomboNotSatisfied)
	}

	return id, &kombo, nil
}

func checkKombo(path string, kombo domain.Kombo) error {
	if kombo.DiscountOrder != domain.KomboDiscountOrder {
		return configError(path+".discountOrder", ErrDiscountOrder)
	}
	if kombo.Discount.IsNegative() || kombo.Discount.GreaterThan(one) {
		return configError(path+".discount", ErrInvalidDiscount)
	}
	return nil
}

func komboSatisfied(kombo domain.Kombo, in *domain.QuoteInput) bool {
	for _, product := range kombo.ProductsIncluded {
		if !in.Product.Includes(product) {
			return false
		}
	}
	for _, addon := range kombo.AddonsIncluded {
		if !in.HasAddon(addon) {
			return false
		}
	}
	return true
}

// SuggestKombo retorna o kombo de maior desconto cujos itens estão todos selecionados.
// Empates são resolvidos pelo menor id.
func SuggestKombo(cfg *domain.PricingConfiguration, in domain.QuoteInput) (string, bool) {
	ids := make([]string, 0, len(cfg.Kombos))
	for id := range cfg.Kombos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestDiscount := decimal.Zero
	for _, id := range ids {
		kombo := cfg.Kombos[id]
		if checkKombo(id, kombo) != nil || !komboSatisfied(kombo, &in) {
			continue
		}
		if best == "" || kombo.Discount.GreaterThan(bestDiscount) {
			best = id
			bestDiscount = kombo.Discount
		}
	}

	return best, best != ""
}

func buildLineItems(
	cfg *domain.PricingConfiguration,
	in *domain.QuoteInput,
	plans []SelectedPlan,
	cycle domain.PaymentCycle,
	kombo *domain.Kombo,
) ([]domain.LineItem, error) {
	lines := make([]domain.LineItem, 0, len(plans)+len(in.Addons))

	for _, plan := range plans {
		path := fmt.Sprintf("basePlans.%s.%s", plan.Product, plan.Tier)
		base, _ := cfg.BasePlans.Plan(plan.Product, plan.Tier)
		if base.Label == "" {
			return nil, configError(path, ErrMissingPlan)
		}

		line, err := priceLine(string(plan.Product), base.Label, base.AnnualPrice, base.Implementation, cycle, kombo)
		if err != nil {
			return nil, err
		}
		line.Kind = domain.LineLicense
		line.Product = plan.Product
		line.PlanTier = plan.Tier
		lines = append(lines, line)
	}

	for _, key := range domain.AddonKeys {
		if !in.HasAddon(key) {
			continue
		}

		addon, _ := cfg.Addons.Get(key)
		if addon.Label == "" {
			return nil, configError("addons."+string(key), ErrMissingPlan)
		}

		eligible := make([]SelectedPlan, 0, len(plans))
		for _, plan := range plans {
			if addon.AvailableFor(plan.Product) {
				eligible = append(eligible, plan)
			}
		}

		// add-ons compartilháveis são cobrados uma vez, no maior nível selecionado
		if addon.Shareable && len(eligible) > 1 {
			eligible = []SelectedPlan{{Tier: highestTier(eligible)}}
		}

		for _, plan := range eligible {
			line, err := priceLine(string(key), addon.Label, addon.AnnualPrice, addon.Implementation, cycle, kombo)
			if err != nil {
				return nil, err
			}
			line.Kind = domain.LineAddon
			line.Product = plan.Product
			line.PlanTier = plan.Tier
			lines = append(lines, line)
		}
	}

	return lines, nil
}

func priceLine(key, label string, base, implementation decimal.Decimal, cycle domain.PaymentCycle, kombo *domain.Kombo) (domain.LineItem, error) {
	price, err := ApplyDiscounts(base, cycle, kombo, key)
	if err != nil {
		return domain.LineItem{}, err
	}

	fee, waived := ImplementationFee(implementation, kombo, key)

	return domain.LineItem{
		Key:                  key,
		Label:                label,
		ReferencePrice:       base,
		AfterCycle:           price.AfterCycle,
		AfterKombo:           price.AfterKombo,
		KomboApplied:         price.KomboApplied,
		Implementation:       fee,
		ImplementationWaived: waived,
	}, nil
}

func buildPostPaid(
	cfg *domain.PricingConfiguration,
	in *domain.QuoteInput,
	plans []SelectedPlan,
	lines []domain.LineItem,
	kombo *domain.Kombo,
) (domain.PostPaidBreakdown, error) {
	breakdown := domain.PostPaidBreakdown{
		ImobAddons:   newGroup(domain.CostScopeImob),
		LocAddons:    newGroup(domain.CostScopeLocacao),
		SharedAddons: newGroup(domain.CostScopeShared),
		Total:        decimal.Zero,
	}

	for _, metered := range meteredResources {
		if metered.RequiresAddon != "" && !in.HasAddon(metered.RequiresAddon) {
			continue
		}

		table, err := variableCostTable(cfg, metered.Resource)
		if err != nil {
			return domain.PostPaidBreakdown{}, err
		}
		tier, ok := tierForScope(table.Product, plans)
		if !ok {
			continue
		}

		usage := metered.Usage(in.Usage)
		included := includedUnits(cfg, lines, metered.Resource)
		overage := max(0, usage-included)

		path := fmt.Sprintf("variableCosts.%s.tiers.%s", metered.Resource, tier)
		tiers, err := tiersFor(table, path, tier)
		if err != nil {
			return domain.PostPaidBreakdown{}, err
		}
		cost, err := computeTiers(path, overage, tiers, decimal.Zero, false)
		if err != nil {
			return domain.PostPaidBreakdown{}, err
		}

		total := cost.Total
		if kombo != nil && kombo.DiscountsPostPaid {
			total = total.Mul(one.Sub(kombo.Discount))
		}

		item := domain.PostPaidItem{
			Resource:   metered.Resource,
			Label:      table.Label,
			UnitLabel:  table.UnitLabel,
			PlanTier:   tier,
			Usage:      usage,
			Included:   included,
			Additional: overage,
			Total:      total,
			PerUnit:    decimal.Zero,
			Brackets:   cost.Breakdown,
		}
		if overage > 0 {
			item.PerUnit = total.Div(decimal.NewFromInt(overage))
		}

		group := breakdown.Group(table.Product)
		group.Items = append(group.Items, item)
		group.Total = group.Total.Add(total)
		breakdown.Total = breakdown.Total.Add(total)
	}

	return breakdown, nil
}

// variableCostTable busca a tabela do recurso. Tabela sem escopo válido é tratada como ausente.
func variableCostTable(cfg *domain.PricingConfiguration, resource domain.ResourceType) (domain.VariableCostTable, error) {
	table, ok := cfg.VariableCosts.Table(resource)
	if !ok || !table.Product.Valid() {
		return domain.VariableCostTable{}, configError("variableCosts."+string(resource), ErrMissingTable)
	}
	return table, nil
}

// tiersFor retorna as faixas do nível. Lista vazia é válida e custa zero, lista ausente não.
func tiersFor(table domain.VariableCostTable, path string, tier domain.PlanTier) ([]domain.Tier, error) {
	tiers, ok := table.Tiers.Get(tier)
	if !ok || tiers == nil {
		return nil, configError(path, ErrMissingTable)
	}
	return tiers, nil
}

func newGroup(scope domain.CostScope) domain.PostPaidGroup {
	return domain.PostPaidGroup{
		Label: groupLabels[scope],
		Items: []domain.PostPaidItem{},
		Total: decimal.Zero,
	}
}

// includedUnits soma as franquias do recurso em todas as linhas cotadas.
// Cada linha usa o nível do seu próprio produto, então franquias nunca acumulam entre níveis.
func includedUnits(cfg *domain.PricingConfiguration, lines []domain.LineItem, resource domain.ResourceType) int64 {
	var total int64
	for _, line := range lines {
		var units []domain.IncludedUnit
		switch line.Kind {
		case domain.LineLicense:
			plan, _ := cfg.BasePlans.Plan(line.Product, line.PlanTier)
			units = plan.IncludedUnits
		case domain.LineAddon:
			addon, _ := cfg.Addons.Get(domain.AddonKey(line.Key))
			units = addon.IncludedUnits
		}

		for _, unit := range units {
			if unit.Type == resource {
				total += unit.QuantityFor(line.PlanTier)
			}
		}
	}
	return total
}

// tierForScope resolve o nível de plano usado por uma tabela de custo.
// Tabelas compartilhadas usam o maior nível selecionado.
func tierForScope(scope domain.CostScope, plans []SelectedPlan) (domain.PlanTier, bool) {
	switch scope {
	case domain.CostScopeImob, domain.CostScopeLocacao:
		for _, plan := range plans {
			if string(plan.Product) == string(scope) {
				return plan.Tier, true
			}
		}
		return "", false
	case domain.CostScopeShared:
		if len(plans) == 0 {
			return "", false
		}
		return highestTier(plans), true
	}
	return "", false
}

func highestTier(plans []SelectedPlan) domain.PlanTier {
	highest := plans[0].Tier
	for _, plan := range plans[1:] {
		if plan.Tier.Rank() > highest.Rank() {
			highest = plan.Tier
		}
	}
	return highest
}
