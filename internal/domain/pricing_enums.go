// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "fmt"

// PlanTier identifica o nível de um plano (prime, k, k2)
type PlanTier string

const (
	PlanTierPrime PlanTier = "prime"
	PlanTierK     PlanTier = "k"
	PlanTierK2    PlanTier = "k2"
)

// PlanTiers lista os níveis em ordem crescente
var PlanTiers = []PlanTier{PlanTierPrime, PlanTierK, PlanTierK2}

// Rank retorna a posição do nível na escala (prime < k < k2), -1 se desconhecido
func (t PlanTier) Rank() int {
	for i, tier := range PlanTiers {
		if tier == t {
			return i
		}
	}
	return -1
}

func (t PlanTier) Valid() bool {
	return t.Rank() >= 0
}

// ProductType identifica o produto vendido
type ProductType string

const (
	ProductImob    ProductType = "imob"
	ProductLocacao ProductType = "locacao"
	ProductBoth    ProductType = "both"
)

// Includes informa se a seleção de produto contém o produto p
func (p ProductType) Includes(other ProductType) bool {
	if p == ProductBoth {
		return other == ProductImob || other == ProductLocacao
	}
	return p == other
}

func (p ProductType) Valid() bool {
	return p == ProductImob || p == ProductLocacao || p == ProductBoth
}

// Products expande a seleção nos produtos individuais, sempre em ordem fixa
func (p ProductType) Products() []ProductType {
	switch p {
	case ProductImob:
		return []ProductType{ProductImob}
	case ProductLocacao:
		return []ProductType{ProductLocacao}
	case ProductBoth:
		return []ProductType{ProductImob, ProductLocacao}
	}
	return nil
}

// AddonKey identifica um módulo opcional
type AddonKey string

const (
	AddonLeads        AddonKey = "leads"
	AddonInteligencia AddonKey = "inteligencia"
	AddonAssinatura   AddonKey = "assinatura"
	AddonPay          AddonKey = "pay"
	AddonSeguros      AddonKey = "seguros"
	AddonCash         AddonKey = "cash"
)

// AddonKeys lista os add-ons na ordem em que aparecem nas cotações
var AddonKeys = []AddonKey{AddonLeads, AddonInteligencia, AddonAssinatura, AddonPay, AddonSeguros, AddonCash}

func ParseAddonKey(s string) (AddonKey, error) {
	for _, key := range AddonKeys {
		if string(key) == s {
			return key, nil
		}
	}
	return "", fmt.Errorf("add-on desconhecido: %q", s)
}

// ResourceType identifica um recurso cobrado por uso (pós-pago)
type ResourceType string

const (
	ResourceUsers      ResourceType = "users"
	ResourceContracts  ResourceType = "contracts"
	ResourceLeads      ResourceType = "leads"
	ResourceSignatures ResourceType = "signatures"
	ResourceBoletos    ResourceType = "boletos"
	ResourceSplits     ResourceType = "splits"
	ResourceInsurance  ResourceType = "insurance"
)

var ResourceTypes = []ResourceType{
	ResourceUsers,
	ResourceContracts,
	ResourceLeads,
	ResourceSignatures,
	ResourceBoletos,
	ResourceSplits,
	ResourceInsurance,
}

func (r ResourceType) Valid() bool {
	for _, resource := range ResourceTypes {
		if resource == r {
			return true
		}
	}
	return false
}

// CycleID identifica a periodicidade de cobrança
type CycleID string

const (
	CycleMonthly    CycleID = "monthly"
	CycleSemiannual CycleID = "semiannual"
	CycleAnnual     CycleID = "annual"
	CycleBiennial   CycleID = "biennial"
)

// CostScope indica a qual produto uma tabela de custo variável pertence
type CostScope string

const (
	CostScopeImob    CostScope = "imob"
	CostScopeLocacao CostScope = "locacao"
	CostScopeShared  CostScope = "shared"
)

func (s CostScope) Valid() bool {
	switch s {
	case CostScopeImob, CostScopeLocacao, CostScopeShared:
		return true
	}
	return false
}

// PerPlan guarda um valor para cada nível de plano
type PerPlan[T any] struct {
	Prime T `json:"prime"`
	K     T `json:"k"`
	K2    T `json:"k2"`
}

// Get retorna o valor do nível informado
func (p PerPlan[T]) Get(tier PlanTier) (T, bool) {
	switch tier {
	case PlanTierPrime:
		return p.Prime, true
	case PlanTierK:
		return p.K, true
	case PlanTierK2:
		return p.K2, true
	}
	var zero T
	return zero, false
}
