package quoting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

var cycleIDs = []domain.CycleID{domain.CycleMonthly, domain.CycleSemiannual, domain.CycleAnnual, domain.CycleBiennial}

// ValidateConfiguration confere a configuração inteira antes de ela entrar em uso,
// para que tabelas inválidas sejam rejeitadas no carregamento e não na primeira cotação.
func ValidateConfiguration(cfg *domain.PricingConfiguration) error {
	if err := cfg.Validate(); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			path := fe.Namespace()
			if idx := strings.Index(path, "."); idx >= 0 {
				path = path[idx+1:]
			}
			return configError(path, fmt.Errorf("regra %s não atendida", fe.Tag()))
		}
		return configError("config", err)
	}

	for _, id := range cycleIDs {
		c, _ := cfg.Cycles.Get(id)
		if _, err := resolveCycle(cfg, id); err != nil {
			return err
		}
		if _, err := applyCycle(one, c.Formula); err != nil {
			return configError("cycles."+string(id)+".formula.operation", ErrInvalidCycle)
		}
	}

	for _, product := range []domain.ProductType{domain.ProductImob, domain.ProductLocacao} {
		for _, tier := range domain.PlanTiers {
			plan, _ := cfg.BasePlans.Plan(product, tier)
			path := fmt.Sprintf("basePlans.%s.%s", product, tier)
			if plan.Label == "" {
				return configError(path, ErrMissingPlan)
			}
			if plan.AnnualPrice.IsNegative() || plan.Implementation.IsNegative() {
				return configError(path, ErrNegativeAmount)
			}
		}
	}

	for _, key := range domain.AddonKeys {
		addon, _ := cfg.Addons.Get(key)
		path := "addons." + string(key)
		if addon.Label == "" {
			return configError(path, ErrMissingPlan)
		}
		if addon.AnnualPrice.IsNegative() || addon.Implementation.IsNegative() {
			return configError(path, ErrNegativeAmount)
		}
	}

	for _, resource := range domain.ResourceTypes {
		table, err := variableCostTable(cfg, resource)
		if err != nil {
			return err
		}
		for _, tier := range domain.PlanTiers {
			path := fmt.Sprintf("variableCosts.%s.tiers.%s", resource, tier)
			tiers, err := tiersFor(table, path, tier)
			if err != nil {
				return err
			}
			if err := ValidateTiers(path, tiers); err != nil {
				return err
			}
			if len(tiers) == 0 {
				continue
			}

			// comissão de seguro é percentual, os demais recursos têm preço por unidade
			rated := resource == domain.ResourceInsurance
			if rated != (tiers[0].Rate != nil) {
				return configError(path+"[0]", ErrTierKind)
			}
		}
	}

	ids := make([]string, 0, len(cfg.Kombos))
	for id := range cfg.Kombos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		kombo := cfg.Kombos[id]
		path := "kombos." + id
		if err := checkKombo(path, kombo); err != nil {
			return err
		}
		for i, key := range kombo.AddonsIncluded {
			if _, err := domain.ParseAddonKey(string(key)); err != nil {
				return configError(fmt.Sprintf("%s.addonsIncluded[%d]", path, i), ErrUnknownAddon)
			}
		}
		for i, key := range kombo.FreeImplementations {
			if !isLineKey(key) {
				return configError(fmt.Sprintf("%s.freeImplementations[%d]", path, i), ErrUnknownAddon)
			}
		}
	}

	for _, service := range []struct {
		path    string
		service domain.RecurringService
	}{
		{"premiumServices.recurring.vipSupport", cfg.PremiumServices.Recurring.VIPSupport},
		{"premiumServices.recurring.dedicatedCs", cfg.PremiumServices.Recurring.DedicatedCS},
	} {
		if price := service.service.MonthlyPrice; price != nil && price.IsNegative() {
			return configError(service.path+".monthlyPrice", ErrNegativeAmount)
		}
	}

	return nil
}

// isLineKey informa se a chave identifica uma linha de preço (produto ou add-on)
func isLineKey(key string) bool {
	if key == string(domain.ProductImob) || key == string(domain.ProductLocacao) {
		return true
	}
	_, err := domain.ParseAddonKey(key)
	return err == nil
}
