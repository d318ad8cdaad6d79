package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PricingConfiguration é o conjunto versionado de regras de preço.
// É carregado uma vez por cálculo e nunca alterado durante o uso.
type PricingConfiguration struct {
	Version         string             `json:"version" validate:"required"`
	Cycles          Cycles             `json:"cycles"`
	BasePlans       BasePlans          `json:"basePlans"`
	Addons          Addons             `json:"addons"`
	PremiumServices PremiumServices    `json:"premiumServices"`
	Kombos          map[string]Kombo   `json:"kombos" validate:"dive"`
	VariableCosts   VariableCosts      `json:"variableCosts"`
	Revenue         RevenueAssumptions `json:"revenue"`
	FeatureMatrix   json.RawMessage    `json:"featureMatrix,omitempty"`
}

type Cycles struct {
	Monthly    PaymentCycle `json:"monthly"`
	Semiannual PaymentCycle `json:"semiannual"`
	Annual     PaymentCycle `json:"annual"`
	Biennial   PaymentCycle `json:"biennial"`
}

// Get retorna o ciclo pelo identificador
func (c Cycles) Get(id CycleID) (PaymentCycle, bool) {
	switch id {
	case CycleMonthly:
		return c.Monthly, true
	case CycleSemiannual:
		return c.Semiannual, true
	case CycleAnnual:
		return c.Annual, true
	case CycleBiennial:
		return c.Biennial, true
	}
	return PaymentCycle{}, false
}

// FormulaOperation define como o preço de referência é transformado pelo ciclo
type FormulaOperation string

const (
	FormulaMultiply FormulaOperation = "multiply"
	FormulaDiscount FormulaOperation = "discount"
	FormulaAdd      FormulaOperation = "add"
)

type CycleFormula struct {
	Operation FormulaOperation `json:"operation" validate:"required,oneof=multiply discount add"`
	Value     decimal.Decimal  `json:"value"`
}

// PaymentCycle descreve uma periodicidade de cobrança.
// Multiplier e DiscountVsMonthly são apenas informativos, Formula é a fonte de verdade.
type PaymentCycle struct {
	Label             string          `json:"label"`
	Months            int             `json:"months" validate:"gte=1"`
	Multiplier        decimal.Decimal `json:"multiplier"`
	DiscountVsMonthly decimal.Decimal `json:"discountVsMonthly"`
	MaxInstallments   int             `json:"maxInstallments" validate:"gte=1"`
	Formula           CycleFormula    `json:"formula"`
}

// IncludedUnit é uma franquia de uso concedida por plano ou add-on
type IncludedUnit struct {
	Type     ResourceType    `json:"type" validate:"required,oneof=users contracts leads signatures boletos splits insurance"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	ByPlan   *PerPlan[int64] `json:"byPlan,omitempty"`
}

// QuantityFor resolve a franquia para o nível de plano informado
func (u IncludedUnit) QuantityFor(tier PlanTier) int64 {
	if u.ByPlan != nil {
		if quantity, ok := u.ByPlan.Get(tier); ok {
			return quantity
		}
	}
	return u.Quantity
}

// BasePlan é um nível de plano de um produto.
// AnnualPrice é o preço mensal de referência na cobrança anual.
type BasePlan struct {
	Label          string          `json:"label"`
	AnnualPrice    decimal.Decimal `json:"annualPrice"`
	Implementation decimal.Decimal `json:"implementation"`
	IncludedUnits  []IncludedUnit  `json:"includedUnits" validate:"dive"`
}

type BasePlans struct {
	Imob    PerPlan[BasePlan] `json:"imob"`
	Locacao PerPlan[BasePlan] `json:"locacao"`
}

// Plan retorna o plano do produto no nível informado
func (b BasePlans) Plan(product ProductType, tier PlanTier) (BasePlan, bool) {
	switch product {
	case ProductImob:
		return b.Imob.Get(tier)
	case ProductLocacao:
		return b.Locacao.Get(tier)
	}
	return BasePlan{}, false
}

type Addon struct {
	Label          string          `json:"label"`
	AnnualPrice    decimal.Decimal `json:"annualPrice"`
	Implementation decimal.Decimal `json:"implementation"`
	IncludedUnits  []IncludedUnit  `json:"includedUnits,omitempty" validate:"dive"`
	Availability   []ProductType   `json:"availability" validate:"min=1,dive,oneof=imob locacao"`
	Shareable      bool            `json:"shareable"`
}

// AvailableFor informa se o add-on pode ser contratado com o produto
func (a Addon) AvailableFor(product ProductType) bool {
	for _, p := range a.Availability {
		if p == product {
			return true
		}
	}
	return false
}

type Addons struct {
	Leads        Addon `json:"leads"`
	Inteligencia Addon `json:"inteligencia"`
	Assinatura   Addon `json:"assinatura"`
	Pay          Addon `json:"pay"`
	Seguros      Addon `json:"seguros"`
	Cash         Addon `json:"cash"`
}

// Get retorna o add-on pela chave
func (a Addons) Get(key AddonKey) (Addon, bool) {
	switch key {
	case AddonLeads:
		return a.Leads, true
	case AddonInteligencia:
		return a.Inteligencia, true
	case AddonAssinatura:
		return a.Assinatura, true
	case AddonPay:
		return a.Pay, true
	case AddonSeguros:
		return a.Seguros, true
	case AddonCash:
		return a.Cash, true
	}
	return Addon{}, false
}

// RecurringService é um serviço premium mensal (suporte VIP, CS dedicado).
// MonthlyPrice nulo significa que o serviço não é vendido avulso.
type RecurringService struct {
	Label         string           `json:"label"`
	MonthlyPrice  *decimal.Decimal `json:"monthlyPrice"`
	DefaultByPlan PerPlan[bool]    `json:"defaultByPlan"`
}

// DuplicationRule define como franquias de treinamento se combinam entre imob e locação
type DuplicationRule string

const (
	DuplicationPerProduct DuplicationRule = "per_product"
	DuplicationSum        DuplicationRule = "sum"
	DuplicationMax        DuplicationRule = "max"
)

// NonRecurringService é um serviço premium avulso (treinamentos)
type NonRecurringService struct {
	Label                  string          `json:"label"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	IncludedQuantityByPlan PerPlan[int64]  `json:"includedQuantityByPlan"`
	DuplicationRule        DuplicationRule `json:"duplicationRule" validate:"required,oneof=per_product sum max"`
}

type RecurringServices struct {
	VIPSupport  RecurringService `json:"vipSupport"`
	DedicatedCS RecurringService `json:"dedicatedCs"`
}

type NonRecurringServices struct {
	OnlineTraining     NonRecurringService `json:"onlineTraining"`
	PresentialTraining NonRecurringService `json:"presentialTraining"`
}

type PremiumServices struct {
	Recurring    RecurringServices    `json:"recurring"`
	NonRecurring NonRecurringServices `json:"nonRecurring"`
}

// KomboDiscountOrder é a única posição aceita para o desconto do kombo (após o ciclo)
const KomboDiscountOrder = 2

// Kombo é um pacote de produtos e add-ons com desconto adicional
type Kombo struct {
	Label               string          `json:"label"`
	Discount            decimal.Decimal `json:"discount"`
	ProductsIncluded    []ProductType   `json:"productsIncluded" validate:"dive,oneof=imob locacao"`
	AddonsIncluded      []AddonKey      `json:"addonsIncluded"`
	FreeImplementations []string        `json:"freeImplementations"`
	IncludesPremium     bool            `json:"includesPremium"`
	DiscountOrder       int             `json:"discountOrder"`
	DiscountsPostPaid   bool            `json:"discountsPostPaid"`
}

// Covers informa se a linha (produto ou add-on) faz parte do kombo
func (k Kombo) Covers(lineKey string) bool {
	for _, p := range k.ProductsIncluded {
		if string(p) == lineKey {
			return true
		}
	}
	for _, a := range k.AddonsIncluded {
		if string(a) == lineKey {
			return true
		}
	}
	return false
}

// WaivesImplementation informa se a implantação da linha é gratuita no kombo
func (k Kombo) WaivesImplementation(lineKey string) bool {
	for _, key := range k.FreeImplementations {
		if key == lineKey {
			return true
		}
	}
	return false
}

// Tier é uma faixa de preço marginal. Exatamente um entre Price e Rate é definido.
// To nulo indica faixa sem limite superior.
type Tier struct {
	From  int64            `json:"from"`
	To    *int64           `json:"to"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Rate  *decimal.Decimal `json:"rate,omitempty"`
}

// Unbounded informa se a faixa não tem limite superior
func (t Tier) Unbounded() bool {
	return t.To == nil
}

// VariableCostTable é a tabela de preços por uso de um recurso
type VariableCostTable struct {
	Label     string          `json:"label"`
	Product   CostScope       `json:"product" validate:"required,oneof=imob locacao shared"`
	Unit      string          `json:"unit"`
	UnitLabel string          `json:"unitLabel"`
	Tiers     PerPlan[[]Tier] `json:"tiers"`
}

type VariableCosts struct {
	Users      VariableCostTable `json:"users"`
	Contracts  VariableCostTable `json:"contracts"`
	Leads      VariableCostTable `json:"leads"`
	Signatures VariableCostTable `json:"signatures"`
	Boletos    VariableCostTable `json:"boletos"`
	Splits     VariableCostTable `json:"splits"`
	Insurance  VariableCostTable `json:"insurance"`
}

// Table retorna a tabela do recurso
func (v VariableCosts) Table(resource ResourceType) (VariableCostTable, bool) {
	switch resource {
	case ResourceUsers:
		return v.Users, true
	case ResourceContracts:
		return v.Contracts, true
	case ResourceLeads:
		return v.Leads, true
	case ResourceSignatures:
		return v.Signatures, true
	case ResourceBoletos:
		return v.Boletos, true
	case ResourceSplits:
		return v.Splits, true
	case ResourceInsurance:
		return v.Insurance, true
	}
	return VariableCostTable{}, false
}

// RevenueAssumptions são as premissas usadas na projeção de receita
type RevenueAssumptions struct {
	FlatInsuranceCommissionPerContract decimal.Decimal `json:"flatInsuranceCommissionPerContract"`
	CashPotentialRate                  decimal.Decimal `json:"cashPotentialRate"`
}

// PricingSnapshot é uma configuração validada e imutável, pronta para uso
type PricingSnapshot struct {
	Version  string                `json:"version"`
	Config   *PricingConfiguration `json:"config"`
	Raw      []byte                `json:"-"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// PricingConfigVersion é uma versão persistida do documento de configuração
type PricingConfigVersion struct {
	ID        int       `json:"id"`
	Version   string    `json:"version"`
	Document  []byte    `json:"-"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
