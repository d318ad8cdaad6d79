package domain

import "github.com/shopspring/decimal"

// KomboAuto pede que o kombo seja escolhido a partir da seleção
const KomboAuto = "auto"

// PlanSelection guarda o nível escolhido para cada produto
type PlanSelection struct {
	Imob    *PlanTier `json:"imob,omitempty"`
	Locacao *PlanTier `json:"locacao,omitempty"`
}

// Tier retorna o nível escolhido para o produto
func (p PlanSelection) Tier(product ProductType) (PlanTier, bool) {
	var tier *PlanTier
	switch product {
	case ProductImob:
		tier = p.Imob
	case ProductLocacao:
		tier = p.Locacao
	}
	if tier == nil {
		return "", false
	}
	return *tier, true
}

type UsageMetrics struct {
	Users         int64 `json:"users" validate:"gte=0"`
	Contracts     int64 `json:"contracts" validate:"gte=0"`
	NewContracts  int64 `json:"newContracts" validate:"gte=0"`
	LeadsPerMonth int64 `json:"leadsPerMonth" validate:"gte=0"`
	Closings      int64 `json:"closings" validate:"gte=0"`
}

// PaymentSettings descreve como a imobiliária repassa as tarifas do Kenlo Pay
type PaymentSettings struct {
	ChargesBoletoToTenant bool            `json:"chargesBoletoToTenant"`
	BoletoAmount          decimal.Decimal `json:"boletoAmount"`
	ChargesSplitToOwner   bool            `json:"chargesSplitToOwner"`
	SplitAmount           decimal.Decimal `json:"splitAmount"`
}

type InsuranceSettings struct {
	AverageRent *decimal.Decimal `json:"averageRent,omitempty"`
}

type ProductQuantities struct {
	Imob    int64 `json:"imob" validate:"gte=0"`
	Locacao int64 `json:"locacao" validate:"gte=0"`
}

// Get retorna a quantidade do produto
func (q ProductQuantities) Get(product ProductType) int64 {
	switch product {
	case ProductImob:
		return q.Imob
	case ProductLocacao:
		return q.Locacao
	}
	return 0
}

// PremiumSelection são os serviços premium solicitados pelo vendedor
type PremiumSelection struct {
	VIPSupport         bool              `json:"vipSupport"`
	DedicatedCS        bool              `json:"dedicatedCs"`
	OnlineTraining     ProductQuantities `json:"onlineTraining"`
	PresentialTraining ProductQuantities `json:"presentialTraining"`
}

// QuoteInput são as escolhas do vendedor para um cliente.
// Não é alterado pelo motor de cálculo.
type QuoteInput struct {
	Product   ProductType       `json:"productType" validate:"required,oneof=imob locacao both"`
	Plans     PlanSelection     `json:"plans"`
	Addons    []AddonKey        `json:"addons"`
	Usage     UsageMetrics      `json:"usage"`
	Payments  PaymentSettings   `json:"payments"`
	Insurance InsuranceSettings `json:"insurance"`
	Premium   PremiumSelection  `json:"premium"`
	CycleID   CycleID           `json:"cycle" validate:"required"`
	KomboID   string            `json:"komboId,omitempty"`
}

// HasAddon informa se o add-on foi selecionado
func (in QuoteInput) HasAddon(key AddonKey) bool {
	for _, addon := range in.Addons {
		if addon == key {
			return true
		}
	}
	return false
}

type LineKind string

const (
	LineLicense LineKind = "license"
	LineAddon   LineKind = "addon"
)

// LineItem é uma linha de preço pré-pago (licença de produto ou add-on)
type LineItem struct {
	Key                  string          `json:"key"`
	Kind                 LineKind        `json:"kind"`
	Product              ProductType     `json:"product,omitempty"`
	PlanTier             PlanTier        `json:"planTier,omitempty"`
	Label                string          `json:"label"`
	ReferencePrice       decimal.Decimal `json:"referencePrice"`
	AfterCycle           decimal.Decimal `json:"afterCycle"`
	AfterKombo           decimal.Decimal `json:"afterKombo"`
	KomboApplied         bool            `json:"komboApplied"`
	Implementation       decimal.Decimal `json:"implementation"`
	ImplementationWaived bool            `json:"implementationWaived"`
}

// BracketCharge é o valor cobrado em uma faixa da tabela
type BracketCharge struct {
	From      int64            `json:"from"`
	To        *int64           `json:"to"`
	Units     int64            `json:"units"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
}

// PostPaidItem é o custo por uso de um recurso
type PostPaidItem struct {
	Resource   ResourceType    `json:"resource"`
	Label      string          `json:"label"`
	UnitLabel  string          `json:"unitLabel"`
	PlanTier   PlanTier        `json:"planTier"`
	Usage      int64           `json:"usage"`
	Included   int64           `json:"included"`
	Additional int64           `json:"additional"`
	Total      decimal.Decimal `json:"total"`
	PerUnit    decimal.Decimal `json:"perUnit"`
	Brackets   []BracketCharge `json:"brackets"`
}

type PostPaidGroup struct {
	Label string          `json:"label"`
	Items []PostPaidItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// PostPaidBreakdown agrupa os custos por uso por produto
type PostPaidBreakdown struct {
	ImobAddons   PostPaidGroup   `json:"imobAddons"`
	LocAddons    PostPaidGroup   `json:"locAddons"`
	SharedAddons PostPaidGroup   `json:"sharedAddons"`
	Total        decimal.Decimal `json:"total"`
}

// Group retorna o grupo do escopo de custo
func (b *PostPaidBreakdown) Group(scope CostScope) *PostPaidGroup {
	switch scope {
	case CostScopeImob:
		return &b.ImobAddons
	case CostScopeLocacao:
		return &b.LocAddons
	}
	return &b.SharedAddons
}

type ServiceStatus string

const (
	ServiceIncluded    ServiceStatus = "included"
	ServiceCharged     ServiceStatus = "charged"
	ServiceUnavailable ServiceStatus = "unavailable"
	ServiceNotSelected ServiceStatus = "not_selected"
)

type RecurringServiceCharge struct {
	Label       string          `json:"label"`
	Status      ServiceStatus   `json:"status"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
}

type NonRecurringServiceCharge struct {
	Label     string          `json:"label"`
	Rule      DuplicationRule `json:"rule"`
	Requested int64           `json:"requested"`
	Included  int64           `json:"included"`
	Billable  int64           `json:"billable"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type PremiumServiceCharges struct {
	VIPSupport         RecurringServiceCharge    `json:"vipSupport"`
	DedicatedCS        RecurringServiceCharge    `json:"dedicatedCs"`
	OnlineTraining     NonRecurringServiceCharge `json:"onlineTraining"`
	PresentialTraining NonRecurringServiceCharge `json:"presentialTraining"`
	MonthlyTotal       decimal.Decimal           `json:"monthlyTotal"`
	OneTimeTotal       decimal.Decimal           `json:"oneTimeTotal"`
}

// CashProjection é a estimativa do Kenlo Cash. Computable falso indica que
// não há dados para estimar, o que é diferente de receita zero.
type CashProjection struct {
	Computable       bool            `json:"computable"`
	MonthlyPotential decimal.Decimal `json:"monthlyPotential"`
}

type RevenueProjection struct {
	BoletoRevenue    decimal.Decimal `json:"boletoRevenue"`
	InsuranceRevenue decimal.Decimal `json:"insuranceRevenue"`
	Cash             CashProjection  `json:"cash"`
}

// QuoteResult é a cotação calculada, sem arredondamento.
// Todos os valores são função pura de (configuração, QuoteInput).
type QuoteResult struct {
	ConfigVersion        string                `json:"configVersion"`
	Product              ProductType           `json:"productType"`
	CycleID              CycleID               `json:"cycle"`
	KomboID              string                `json:"komboId,omitempty"`
	LineItems            []LineItem            `json:"lineItems"`
	PostPaid             PostPaidBreakdown     `json:"postPaidBreakdown"`
	Premium              PremiumServiceCharges `json:"premium"`
	LicenseMonthly       decimal.Decimal       `json:"licenseMonthly"`
	TotalMonthly         decimal.Decimal       `json:"totalMonthly"`
	TotalAnnual          decimal.Decimal       `json:"totalAnnual"`
	ImplantationFee      decimal.Decimal       `json:"implantationFee"`
	TrainingTotal        decimal.Decimal       `json:"trainingTotal"`
	FirstYearTotal       decimal.Decimal       `json:"firstYearTotal"`
	CycleCharge          decimal.Decimal       `json:"cycleCharge"`
	MaxInstallments      int                   `json:"maxInstallments"`
	InstallmentValue     decimal.Decimal       `json:"installmentValue"`
	PostPaidTotal        decimal.Decimal       `json:"postPaidTotal"`
	RevenueFromBoletos   decimal.Decimal       `json:"revenueFromBoletos"`
	RevenueFromInsurance decimal.Decimal       `json:"revenueFromInsurance"`
	CashRevenue          CashProjection        `json:"cashRevenue"`
	NetGain              decimal.Decimal       `json:"netGain"`
}
