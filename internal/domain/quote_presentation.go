package domain

import "github.com/vfg2006/kenlo-pricing-api/pkg/utils"

// QuotePresentation é a cotação arredondada para exibição (API, PDF, CLI).
// Valores monetários em unidades inteiras; custos unitários em centavos.
type QuotePresentation struct {
	ConfigVersion        string                 `json:"configVersion" yaml:"configVersion"`
	Product              ProductType            `json:"productType" yaml:"productType"`
	Cycle                CycleID                `json:"cycle" yaml:"cycle"`
	KomboID              string                 `json:"komboId,omitempty" yaml:"komboId,omitempty"`
	LineItems            []LineItemPresentation `json:"lineItems" yaml:"lineItems"`
	PostPaid             []PostPaidGroupView    `json:"postPaidBreakdown" yaml:"postPaidBreakdown"`
	Premium              []PremiumServiceView   `json:"premiumServices" yaml:"premiumServices"`
	TotalMonthly         float64                `json:"totalMonthly" yaml:"totalMonthly"`
	TotalAnnual          float64                `json:"totalAnnual" yaml:"totalAnnual"`
	ImplantationFee      float64                `json:"implantationFee" yaml:"implantationFee"`
	TrainingTotal        float64                `json:"trainingTotal" yaml:"trainingTotal"`
	FirstYearTotal       float64                `json:"firstYearTotal" yaml:"firstYearTotal"`
	CycleCharge          float64                `json:"cycleCharge" yaml:"cycleCharge"`
	MaxInstallments      int                    `json:"maxInstallments" yaml:"maxInstallments"`
	InstallmentValue     float64                `json:"installmentValue" yaml:"installmentValue"`
	PostPaidTotal        float64                `json:"postPaidTotal" yaml:"postPaidTotal"`
	RevenueFromBoletos   float64                `json:"revenueFromBoletos" yaml:"revenueFromBoletos"`
	RevenueFromInsurance float64                `json:"revenueFromInsurance" yaml:"revenueFromInsurance"`
	CashRevenue          *float64               `json:"cashRevenue" yaml:"cashRevenue"`
	NetGain              float64                `json:"netGain" yaml:"netGain"`
}

type LineItemPresentation struct {
	Key                  string  `json:"key" yaml:"key"`
	Label                string  `json:"label" yaml:"label"`
	Product              string  `json:"product,omitempty" yaml:"product,omitempty"`
	PlanTier             string  `json:"planTier,omitempty" yaml:"planTier,omitempty"`
	Monthly              float64 `json:"monthly" yaml:"monthly"`
	KomboApplied         bool    `json:"komboApplied" yaml:"komboApplied"`
	Implementation       float64 `json:"implementation" yaml:"implementation"`
	ImplementationWaived bool    `json:"implementationWaived" yaml:"implementationWaived"`
}

type PostPaidGroupView struct {
	Group string             `json:"group" yaml:"group"`
	Label string             `json:"label" yaml:"label"`
	Items []PostPaidItemView `json:"items" yaml:"items"`
	Total float64            `json:"total" yaml:"total"`
}

type PostPaidItemView struct {
	Label      string  `json:"label" yaml:"label"`
	Included   int64   `json:"included" yaml:"included"`
	Additional int64   `json:"additional" yaml:"additional"`
	Total      float64 `json:"total" yaml:"total"`
	PerUnit    float64 `json:"perUnit" yaml:"perUnit"`
	UnitLabel  string  `json:"unitLabel" yaml:"unitLabel"`
}

type PremiumServiceView struct {
	Label  string  `json:"label" yaml:"label"`
	Status string  `json:"status" yaml:"status"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Present arredonda a cotação. É o único ponto onde arredondamento acontece.
func (r *QuoteResult) Present() QuotePresentation {
	p := QuotePresentation{
		ConfigVersion:        r.ConfigVersion,
		Product:              r.Product,
		Cycle:                r.CycleID,
		KomboID:              r.KomboID,
		LineItems:            make([]LineItemPresentation, 0, len(r.LineItems)),
		TotalMonthly:         utils.RoundCurrency(r.TotalMonthly),
		TotalAnnual:          utils.RoundCurrency(r.TotalAnnual),
		ImplantationFee:      utils.RoundCurrency(r.ImplantationFee),
		TrainingTotal:        utils.RoundCurrency(r.TrainingTotal),
		FirstYearTotal:       utils.RoundCurrency(r.FirstYearTotal),
		CycleCharge:          utils.RoundCurrency(r.CycleCharge),
		MaxInstallments:      r.MaxInstallments,
		InstallmentValue:     utils.RoundCurrency(r.InstallmentValue),
		PostPaidTotal:        utils.RoundCurrency(r.PostPaidTotal),
		RevenueFromBoletos:   utils.RoundCurrency(r.RevenueFromBoletos),
		RevenueFromInsurance: utils.RoundCurrency(r.RevenueFromInsurance),
		NetGain:              utils.RoundCurrency(r.NetGain),
	}

	if r.CashRevenue.Computable {
		cash := utils.RoundCurrency(r.CashRevenue.MonthlyPotential)
		p.CashRevenue = &cash
	}

	for _, line := range r.LineItems {
		p.LineItems = append(p.LineItems, LineItemPresentation{
			Key:                  line.Key,
			Label:                line.Label,
			Product:              string(line.Product),
			PlanTier:             string(line.PlanTier),
			Monthly:              utils.RoundCurrency(line.AfterKombo),
			KomboApplied:         line.KomboApplied,
			Implementation:       utils.RoundCurrency(line.Implementation),
			ImplementationWaived: line.ImplementationWaived,
		})
	}

	groups := []struct {
		key   string
		group PostPaidGroup
	}{
		{"imobAddons", r.PostPaid.ImobAddons},
		{"locAddons", r.PostPaid.LocAddons},
		{"sharedAddons", r.PostPaid.SharedAddons},
	}
	for _, g := range groups {
		view := PostPaidGroupView{
			Group: g.key,
			Label: g.group.Label,
			Items: make([]PostPaidItemView, 0, len(g.group.Items)),
			Total: utils.RoundCurrency(g.group.Total),
		}
		for _, item := range g.group.Items {
			view.Items = append(view.Items, PostPaidItemView{
				Label:      item.Label,
				Included:   item.Included,
				Additional: item.Additional,
				Total:      utils.RoundCurrency(item.Total),
				PerUnit:    utils.RoundWithTwoDecimalPlace(item.PerUnit),
				UnitLabel:  item.UnitLabel,
			})
		}
		p.PostPaid = append(p.PostPaid, view)
	}

	p.Premium = []PremiumServiceView{
		{Label: r.Premium.VIPSupport.Label, Status: string(r.Premium.VIPSupport.Status), Amount: utils.RoundCurrency(r.Premium.VIPSupport.MonthlyCost)},
		{Label: r.Premium.DedicatedCS.Label, Status: string(r.Premium.DedicatedCS.Status), Amount: utils.RoundCurrency(r.Premium.DedicatedCS.MonthlyCost)},
		{Label: r.Premium.OnlineTraining.Label, Status: trainingStatus(r.Premium.OnlineTraining), Amount: utils.RoundCurrency(r.Premium.OnlineTraining.Total)},
		{Label: r.Premium.PresentialTraining.Label, Status: trainingStatus(r.Premium.PresentialTraining), Amount: utils.RoundCurrency(r.Premium.PresentialTraining.Total)},
	}

	return p
}

func trainingStatus(charge NonRecurringServiceCharge) string {
	switch {
	case charge.Requested == 0:
		return string(ServiceNotSelected)
	case charge.Billable == 0:
		return string(ServiceIncluded)
	}
	return string(ServiceCharged)
}
