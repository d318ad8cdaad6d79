package quoting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

// SelectedPlan é um produto selecionado com o nível escolhido
type SelectedPlan struct {
	Product domain.ProductType
	Tier    domain.PlanTier
}

// ResolvePremiumServices decide se cada serviço premium é incluso, cobrado ou indisponível
func ResolvePremiumServices(
	services domain.PremiumServices,
	plans []SelectedPlan,
	kombo *domain.Kombo,
	selection domain.PremiumSelection,
) (domain.PremiumServiceCharges, error) {
	charges := domain.PremiumServiceCharges{
		VIPSupport:   resolveRecurring(services.Recurring.VIPSupport, plans, kombo, selection.VIPSupport),
		DedicatedCS:  resolveRecurring(services.Recurring.DedicatedCS, plans, kombo, selection.DedicatedCS),
		MonthlyTotal: decimal.Zero,
		OneTimeTotal: decimal.Zero,
	}

	var err error
	charges.OnlineTraining, err = resolveTraining(
		"premiumServices.nonRecurring.onlineTraining",
		services.NonRecurring.OnlineTraining,
		plans,
		selection.OnlineTraining,
	)
	if err != nil {
		return domain.PremiumServiceCharges{}, err
	}

	charges.PresentialTraining, err = resolveTraining(
		"premiumServices.nonRecurring.presentialTraining",
		services.NonRecurring.PresentialTraining,
		plans,
		selection.PresentialTraining,
	)
	if err != nil {
		return domain.PremiumServiceCharges{}, err
	}

	charges.MonthlyTotal = charges.VIPSupport.MonthlyCost.Add(charges.DedicatedCS.MonthlyCost)
	charges.OneTimeTotal = charges.OnlineTraining.Total.Add(charges.PresentialTraining.Total)

	return charges, nil
}

func resolveRecurring(service domain.RecurringService, plans []SelectedPlan, kombo *domain.Kombo, requested bool) domain.RecurringServiceCharge {
	charge := domain.RecurringServiceCharge{Label: service.Label, MonthlyCost: decimal.Zero}

	if kombo != nil && kombo.IncludesPremium {
		charge.Status = domain.ServiceIncluded
		return charge
	}

	for _, plan := range plans {
		if included, _ := service.DefaultByPlan.Get(plan.Tier); included {
			charge.Status = domain.ServiceIncluded
			return charge
		}
	}

	switch {
	case !requested:
		charge.Status = domain.ServiceNotSelected
	case service.MonthlyPrice == nil:
		charge.Status = domain.ServiceUnavailable
	default:
		charge.Status = domain.ServiceCharged
		charge.MonthlyCost = *service.MonthlyPrice
	}

	return charge
}

func resolveTraining(path string, service domain.NonRecurringService, plans []SelectedPlan, requested domain.ProductQuantities) (domain.NonRecurringServiceCharge, error) {
	charge := domain.NonRecurringServiceCharge{
		Label:     service.Label,
		Rule:      service.DuplicationRule,
		UnitPrice: service.UnitPrice,
		Total:     decimal.Zero,
	}

	var billable, maxIncluded int64
	for _, plan := range plans {
		included, _ := service.IncludedQuantityByPlan.Get(plan.Tier)
		req := requested.Get(plan.Product)

		charge.Requested += req
		charge.Included += included
		maxIncluded = max(maxIncluded, included)
		billable += max(0, req-included)
	}

	switch service.DuplicationRule {
	case domain.DuplicationPerProduct:
		charge.Billable = billable
	case domain.DuplicationSum:
		charge.Billable = max(0, charge.Requested-charge.Included)
	case domain.DuplicationMax:
		charge.Included = maxIncluded
		charge.Billable = max(0, charge.Requested-maxIncluded)
	default:
		return domain.NonRecurringServiceCharge{}, configError(path+".duplicationRule", ErrUnknownRule)
	}

	charge.Total = service.UnitPrice.Mul(decimal.NewFromInt(charge.Billable))

	return charge, nil
}
