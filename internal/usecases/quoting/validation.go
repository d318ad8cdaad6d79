package quoting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

var ErrInvalidInput = errors.New("valor inválido")

// validateInput rejeita a entrada antes de qualquer cálculo e devolve os planos selecionados
// na ordem fixa imob, locação.
func validateInput(in *domain.QuoteInput) ([]SelectedPlan, error) {
	if err := in.Validate(); err != nil {
		return nil, fromValidationErrors(err)
	}

	plans := make([]SelectedPlan, 0, 2)
	for _, product := range in.Product.Products() {
		tier, ok := in.Plans.Tier(product)
		if !ok {
			return nil, inputError("plans."+string(product), ErrPlanRequired)
		}
		if !tier.Valid() {
			return nil, inputError("plans."+string(product), ErrUnknownPlan)
		}
		plans = append(plans, SelectedPlan{Product: product, Tier: tier})
	}

	seen := make(map[domain.AddonKey]bool, len(in.Addons))
	for i, key := range in.Addons {
		field := fmt.Sprintf("addons[%d]", i)
		if _, err := domain.ParseAddonKey(string(key)); err != nil {
			return nil, inputError(field, ErrUnknownAddon)
		}
		if seen[key] {
			return nil, inputError(field, ErrDuplicatedAddon)
		}
		seen[key] = true
	}

	if in.Payments.BoletoAmount.IsNegative() {
		return nil, inputError("payments.boletoAmount", ErrNegativeAmount)
	}
	if in.Payments.SplitAmount.IsNegative() {
		return nil, inputError("payments.splitAmount", ErrNegativeAmount)
	}
	if rent := in.Insurance.AverageRent; rent != nil && rent.IsNegative() {
		return nil, inputError("insurance.averageRent", ErrNegativeAmount)
	}

	return plans, nil
}

// validateAddonAvailability confere se cada add-on pode ser contratado com algum produto selecionado
func validateAddonAvailability(cfg *domain.PricingConfiguration, in *domain.QuoteInput) error {
	for i, key := range in.Addons {
		addon, _ := cfg.Addons.Get(key)
		available := false
		for _, product := range in.Product.Products() {
			if addon.AvailableFor(product) {
				available = true
				break
			}
		}
		if !available {
			return inputError(fmt.Sprintf("addons[%d]", i), ErrAddonUnavailable)
		}
	}
	return nil
}

// fromValidationErrors converte o primeiro erro do validator em InputError
func fromValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return inputError("input", err)
	}

	fe := validationErrors[0]
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch {
	case fe.Tag() == "gte":
		return inputError(field, ErrNegativeUsage)
	case field == "productType":
		return inputError(field, ErrUnknownProduct)
	case field == "cycle":
		return inputError(field, ErrUnknownCycle)
	}

	return inputError(field, fmt.Errorf("%w: regra %s", ErrInvalidInput, fe.Tag()))
}
