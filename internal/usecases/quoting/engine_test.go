package quoting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

func imobWithLeadsInput() domain.QuoteInput {
	in := imobInput(domain.PlanTierK)
	in.Addons = []domain.AddonKey{domain.AddonLeads}
	in.Usage = domain.UsageMetrics{Users: 8, LeadsPerMonth: 500}
	in.KomboID = "imob-start"
	return in
}

func bothWithPayInput() domain.QuoteInput {
	in := bothInput(domain.PlanTierPrime, domain.PlanTierK2)
	in.Addons = []domain.AddonKey{domain.AddonPay, domain.AddonAssinatura, domain.AddonInteligencia}
	in.Usage = domain.UsageMetrics{Users: 2, Contracts: 600, NewContracts: 30, Closings: 20}
	in.Payments = domain.PaymentSettings{
		ChargesBoletoToTenant: true,
		BoletoAmount:          dec("12"),
		ChargesSplitToOwner:   true,
		SplitAmount:           dec("5"),
	}
	in.Premium = domain.PremiumSelection{VIPSupport: true}
	in.KomboID = domain.KomboAuto
	return in
}

func findItem(t *testing.T, group domain.PostPaidGroup, resource domain.ResourceType) domain.PostPaidItem {
	t.Helper()
	for _, item := range group.Items {
		if item.Resource == resource {
			return item
		}
	}
	t.Fatalf("recurso %s não encontrado no grupo %s", resource, group.Label)
	return domain.PostPaidItem{}
}

func TestComputeQuote_ImobWithKombo(t *testing.T) {
	result, err := ComputeQuote(testConfig(), imobWithLeadsInput())
	require.NoError(t, err)

	assert.Equal(t, "test-1", result.ConfigVersion)
	assert.Equal(t, "imob-start", result.KomboID)

	require.Len(t, result.LineItems, 2)
	license, leads := result.LineItems[0], result.LineItems[1]

	assert.Equal(t, domain.LineLicense, license.Kind)
	assertDecimal(t, "500", license.AfterCycle)
	assertDecimal(t, "450", license.AfterKombo)
	assertDecimal(t, "1000", license.Implementation)
	assert.False(t, license.ImplementationWaived)

	assert.Equal(t, domain.LineAddon, leads.Kind)
	assertDecimal(t, "90", leads.AfterKombo)
	assertDecimal(t, "0", leads.Implementation)
	assert.True(t, leads.ImplementationWaived)

	assertDecimal(t, "540", result.LicenseMonthly)
	assertDecimal(t, "540", result.TotalMonthly)
	assertDecimal(t, "6480", result.TotalAnnual)
	assertDecimal(t, "1000", result.ImplantationFee)
	assertDecimal(t, "7480", result.FirstYearTotal)
	assertDecimal(t, "6480", result.CycleCharge)
	assert.Equal(t, 3, result.MaxInstallments)
	assertDecimal(t, "2160", result.InstallmentValue)

	imob := result.PostPaid.ImobAddons
	require.Len(t, imob.Items, 2)
	users := findItem(t, imob, domain.ResourceUsers)
	assert.Equal(t, int64(5), users.Included)
	assert.Equal(t, int64(3), users.Additional)
	assertDecimal(t, "150", users.Total)
	assertDecimal(t, "50", users.PerUnit)

	leadsCost := findItem(t, imob, domain.ResourceLeads)
	assert.Equal(t, int64(500), leadsCost.Additional)
	assertDecimal(t, "895", leadsCost.Total)

	assert.Empty(t, result.PostPaid.LocAddons.Items)
	assert.Empty(t, result.PostPaid.SharedAddons.Items)
	assertDecimal(t, "1045", result.PostPaidTotal)

	assert.Equal(t, domain.ServiceNotSelected, result.Premium.VIPSupport.Status)
	assertDecimal(t, "0", result.RevenueFromBoletos)
	assertDecimal(t, "-1585", result.NetGain)
}

func TestComputeQuote_BothProductsWithAutoKombo(t *testing.T) {
	result, err := ComputeQuote(testConfig(), bothWithPayInput())
	require.NoError(t, err)

	// core-gestao e elite empatam em 20%, vence o menor id
	assert.Equal(t, "core-gestao", result.KomboID)

	keys := make([]string, 0, len(result.LineItems))
	for _, line := range result.LineItems {
		keys = append(keys, line.Key)
	}
	assert.Equal(t, []string{"imob", "locacao", "inteligencia", "assinatura", "assinatura", "pay"}, keys)

	assertDecimal(t, "160", result.LineItems[0].AfterKombo)
	assert.True(t, result.LineItems[0].ImplementationWaived)
	assertDecimal(t, "800", result.LineItems[1].AfterKombo)

	// inteligência é compartilhável: uma linha, no maior nível selecionado
	assert.Equal(t, domain.PlanTierK2, result.LineItems[2].PlanTier)
	assert.Empty(t, result.LineItems[2].Product)
	assert.False(t, result.LineItems[2].KomboApplied)

	assert.Equal(t, domain.ProductImob, result.LineItems[3].Product)
	assert.Equal(t, domain.ProductLocacao, result.LineItems[4].Product)
	assert.Equal(t, domain.ProductLocacao, result.LineItems[5].Product)

	assertDecimal(t, "1360", result.TotalMonthly)
	assertDecimal(t, "1000", result.ImplantationFee)
	assertDecimal(t, "17320", result.FirstYearTotal)

	loc := result.PostPaid.LocAddons
	assertDecimal(t, "300", findItem(t, loc, domain.ResourceContracts).Total)
	boletos := findItem(t, loc, domain.ResourceBoletos)
	assert.Equal(t, int64(10), boletos.Included)
	assert.Equal(t, int64(590), boletos.Additional)
	assertDecimal(t, "2145", boletos.Total)
	assertDecimal(t, "600", findItem(t, loc, domain.ResourceSplits).Total)
	assertDecimal(t, "3045", loc.Total)

	signatures := findItem(t, result.PostPaid.SharedAddons, domain.ResourceSignatures)
	assert.Equal(t, domain.PlanTierK2, signatures.PlanTier)
	assert.Equal(t, int64(30), signatures.Included)
	assertDecimal(t, "40", signatures.Total)

	users := findItem(t, result.PostPaid.ImobAddons, domain.ResourceUsers)
	assertDecimal(t, "0", users.Total)

	assertDecimal(t, "3085", result.PostPaidTotal)

	assert.Equal(t, domain.ServiceIncluded, result.Premium.VIPSupport.Status)
	assertDecimal(t, "10200", result.RevenueFromBoletos)
	assertDecimal(t, "5755", result.NetGain)
}

func TestComputeQuote_Deterministic(t *testing.T) {
	cfg := testConfig()
	in := bothWithPayInput()

	first, err := ComputeQuote(cfg, in)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := ComputeQuote(cfg, in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, first.Present(), again.Present())
	}
}

func TestComputeQuote_DoesNotMutateInput(t *testing.T) {
	cfg := testConfig()
	in := bothWithPayInput()
	addons := append([]domain.AddonKey(nil), in.Addons...)

	_, err := ComputeQuote(cfg, in)
	require.NoError(t, err)

	assert.Equal(t, addons, in.Addons)
	assert.Equal(t, domain.KomboAuto, in.KomboID)
	assert.Equal(t, testConfig(), cfg)
}

func TestComputeQuote_Monotonic(t *testing.T) {
	cfg := testConfig()
	metrics := map[string]func(*domain.UsageMetrics, int64){
		"users":     func(u *domain.UsageMetrics, v int64) { u.Users = v },
		"contracts": func(u *domain.UsageMetrics, v int64) { u.Contracts = v },
		"closings":  func(u *domain.UsageMetrics, v int64) { u.Closings = v },
	}

	for name, set := range metrics {
		t.Run(name, func(t *testing.T) {
			in := bothWithPayInput()
			in.Payments = domain.PaymentSettings{}

			var previous *domain.QuoteResult
			for v := int64(0); v <= 1200; v += 50 {
				set(&in.Usage, v)
				result, err := ComputeQuote(cfg, in)
				require.NoError(t, err)

				if previous != nil {
					assert.False(t, result.PostPaidTotal.LessThan(previous.PostPaidTotal), "%s=%d", name, v)
					assert.False(t, result.FirstYearTotal.LessThan(previous.FirstYearTotal), "%s=%d", name, v)
				}
				previous = result
			}
		})
	}
}

func TestComputeQuote_FreeUnits(t *testing.T) {
	cfg := testConfig()

	for _, users := range []int64{0, 1, 5} {
		in := imobInput(domain.PlanTierK)
		in.Usage.Users = users

		result, err := ComputeQuote(cfg, in)
		require.NoError(t, err)

		item := findItem(t, result.PostPaid.ImobAddons, domain.ResourceUsers)
		assert.Equal(t, int64(0), item.Additional)
		assertDecimal(t, "0", item.Total)
		assert.Empty(t, item.Brackets)
	}
}

func TestComputeQuote_EmptyTierListCostsZero(t *testing.T) {
	cfg := testConfig()
	cfg.VariableCosts.Leads.Tiers.K = []domain.Tier{}
	require.NoError(t, ValidateConfiguration(cfg))

	in := imobWithLeadsInput()
	in.KomboID = ""

	result, err := ComputeQuote(cfg, in)
	require.NoError(t, err)

	leads := findItem(t, result.PostPaid.ImobAddons, domain.ResourceLeads)
	assert.Equal(t, int64(500), leads.Additional)
	assertDecimal(t, "0", leads.Total)
	assert.Empty(t, leads.Brackets)
}

func TestComputeQuote_IncludedUnitsByPlan(t *testing.T) {
	cfg := testConfig()
	cfg.Addons.Leads.IncludedUnits = []domain.IncludedUnit{{
		Type:   domain.ResourceLeads,
		ByPlan: &domain.PerPlan[int64]{Prime: 50, K: 100, K2: 300},
	}}

	in := imobWithLeadsInput()
	in.KomboID = ""

	result, err := ComputeQuote(cfg, in)
	require.NoError(t, err)

	leads := findItem(t, result.PostPaid.ImobAddons, domain.ResourceLeads)
	assert.Equal(t, int64(100), leads.Included)
	assert.Equal(t, int64(400), leads.Additional)
	// 200 x 2,00 + 150 x 1,80 + 50 x 1,50
	assertDecimal(t, "745", leads.Total)
}

func TestComputeQuote_KomboDiscountsPostPaid(t *testing.T) {
	cfg := testConfig()
	kombo := cfg.Kombos["imob-start"]
	kombo.DiscountsPostPaid = true
	cfg.Kombos["imob-start"] = kombo

	result, err := ComputeQuote(cfg, imobWithLeadsInput())
	require.NoError(t, err)

	// 1045 x 0,9
	assertDecimal(t, "940.5", result.PostPaidTotal)
}

func TestComputeQuote_InputErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         func() domain.QuoteInput
		expectedErr   error
		expectedField string
	}{
		{
			name: "Uso negativo",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Usage.Users = -1
				return in
			},
			expectedErr:   ErrNegativeUsage,
			expectedField: "usage.users",
		},
		{
			name: "Treinamento negativo",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Premium.OnlineTraining.Imob = -2
				return in
			},
			expectedErr:   ErrNegativeUsage,
			expectedField: "premium.onlineTraining.imob",
		},
		{
			name: "Produto desconhecido",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Product = "crm"
				return in
			},
			expectedErr:   ErrUnknownProduct,
			expectedField: "productType",
		},
		{
			name: "Plano ausente para produto selecionado",
			input: func() domain.QuoteInput {
				in := bothInput(domain.PlanTierK, domain.PlanTierK)
				in.Plans.Locacao = nil
				return in
			},
			expectedErr:   ErrPlanRequired,
			expectedField: "plans.locacao",
		},
		{
			name: "Nível de plano desconhecido",
			input: func() domain.QuoteInput {
				return imobInput(domain.PlanTier("k3"))
			},
			expectedErr:   ErrUnknownPlan,
			expectedField: "plans.imob",
		},
		{
			name: "Add-on desconhecido",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Addons = []domain.AddonKey{"crm"}
				return in
			},
			expectedErr:   ErrUnknownAddon,
			expectedField: "addons[0]",
		},
		{
			name: "Add-on repetido",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Addons = []domain.AddonKey{domain.AddonLeads, domain.AddonLeads}
				return in
			},
			expectedErr:   ErrDuplicatedAddon,
			expectedField: "addons[1]",
		},
		{
			name: "Add-on de locação para produto imob",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.Addons = []domain.AddonKey{domain.AddonLeads, domain.AddonPay}
				return in
			},
			expectedErr:   ErrAddonUnavailable,
			expectedField: "addons[1]",
		},
		{
			name: "Valor de boleto negativo",
			input: func() domain.QuoteInput {
				in := locacaoInput(domain.PlanTierK, domain.AddonPay)
				in.Payments.BoletoAmount = dec("-1")
				return in
			},
			expectedErr:   ErrNegativeAmount,
			expectedField: "payments.boletoAmount",
		},
		{
			name: "Kombo desconhecido",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.KomboID = "mega"
				return in
			},
			expectedErr:   ErrUnknownKombo,
			expectedField: "komboId",
		},
		{
			name: "Kombo sem todos os itens selecionados",
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.KomboID = "imob-start"
				return in
			},
			expectedErr:   ErrKomboNotSatisfied,
			expectedField: "komboId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeQuote(testConfig(), tt.input())

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.expectedErr), "erro inesperado: %v", err)

			var inErr *InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tt.expectedField, inErr.Field)
		})
	}
}

func TestComputeQuote_ConfigErrors(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(cfg *domain.PricingConfiguration)
		input        func() domain.QuoteInput
		expectedErr  error
		expectedPath string
	}{
		{
			name:   "Ciclo desconhecido",
			mutate: func(cfg *domain.PricingConfiguration) {},
			input: func() domain.QuoteInput {
				in := imobInput(domain.PlanTierK)
				in.CycleID = "weekly"
				return in
			},
			expectedErr:  ErrUnknownCycle,
			expectedPath: "cycles.weekly",
		},
		{
			name: "Plano sem configuração",
			mutate: func(cfg *domain.PricingConfiguration) {
				cfg.BasePlans.Imob.K = domain.BasePlan{}
			},
			input:        func() domain.QuoteInput { return imobInput(domain.PlanTierK) },
			expectedErr:  ErrMissingPlan,
			expectedPath: "basePlans.imob.k",
		},
		{
			name: "Tabela de faixas com intervalo",
			mutate: func(cfg *domain.PricingConfiguration) {
				cfg.VariableCosts.Users.Tiers.K = []domain.Tier{
					priceTier(1, int64Ptr(10), "50"),
					priceTier(20, nil, "40"),
				}
			},
			input:        func() domain.QuoteInput { return imobInput(domain.PlanTierK) },
			expectedErr:  ErrTierGap,
			expectedPath: "variableCosts.users.tiers.k[1]",
		},
		{
			name: "Tabela de custo variável ausente",
			mutate: func(cfg *domain.PricingConfiguration) {
				cfg.VariableCosts.Leads = domain.VariableCostTable{}
			},
			input:        imobWithLeadsInput,
			expectedErr:  ErrMissingTable,
			expectedPath: "variableCosts.leads",
		},
		{
			name: "Faixas ausentes para o nível do plano",
			mutate: func(cfg *domain.PricingConfiguration) {
				cfg.VariableCosts.Users.Tiers.K = nil
			},
			input:        func() domain.QuoteInput { return imobInput(domain.PlanTierK) },
			expectedErr:  ErrMissingTable,
			expectedPath: "variableCosts.users.tiers.k",
		},
		{
			name: "Tabela de comissão de seguro ausente",
			mutate: func(cfg *domain.PricingConfiguration) {
				cfg.VariableCosts.Insurance = domain.VariableCostTable{}
			},
			input: func() domain.QuoteInput {
				in := domain.QuoteInput{
					Product: domain.ProductLocacao,
					Plans:   domain.PlanSelection{Locacao: tierPtr(domain.PlanTierK)},
					Addons:  []domain.AddonKey{domain.AddonSeguros},
					CycleID: domain.CycleAnnual,
				}
				in.Usage.Contracts = 150
				in.Insurance.AverageRent = decPtr("2000")
				return in
			},
			expectedErr:  ErrMissingTable,
			expectedPath: "variableCosts.insurance",
		},
		{
			name: "Kombo com ordem de desconto diferente de 2",
			mutate: func(cfg *domain.PricingConfiguration) {
				kombo := cfg.Kombos["imob-start"]
				kombo.DiscountOrder = 1
				cfg.Kombos["imob-start"] = kombo
			},
			input:        imobWithLeadsInput,
			expectedErr:  ErrDiscountOrder,
			expectedPath: "kombos.imob-start.discountOrder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			result, err := ComputeQuote(cfg, tt.input())

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.expectedErr), "erro inesperado: %v", err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.expectedPath, cfgErr.Path)
		})
	}
}

func TestSuggestKombo(t *testing.T) {
	cfg := testConfig()

	id, ok := SuggestKombo(cfg, imobWithLeadsInput())
	assert.True(t, ok)
	assert.Equal(t, "imob-start", id)

	id, ok = SuggestKombo(cfg, imobInput(domain.PlanTierK))
	assert.False(t, ok)
	assert.Empty(t, id)

	elite := cfg.Kombos["elite"]
	elite.Discount = dec("0.25")
	cfg.Kombos["elite"] = elite

	id, ok = SuggestKombo(cfg, bothWithPayInput())
	assert.True(t, ok)
	assert.Equal(t, "elite", id)
}

func TestQuoteResult_Present(t *testing.T) {
	cfg := testConfig()
	cfg.Cycles.Monthly = cycle(1, 1, domain.FormulaMultiply, "1.125")

	in := imobWithLeadsInput()
	in.CycleID = domain.CycleMonthly
	in.Usage.LeadsPerMonth = 0

	result, err := ComputeQuote(cfg, in)
	require.NoError(t, err)

	// 500 x 1,125 x 0,9 = 506,25 e 100 x 1,125 x 0,9 = 101,25
	assertDecimal(t, "607.5", result.TotalMonthly)

	view := result.Present()
	assert.Equal(t, float64(608), view.TotalMonthly)
	assert.Equal(t, float64(506), view.LineItems[0].Monthly)
	assert.Equal(t, float64(101), view.LineItems[1].Monthly)
	assert.Nil(t, view.CashRevenue)
	require.Len(t, view.PostPaid, 3)
	assert.Equal(t, "imobAddons", view.PostPaid[0].Group)
	assert.Equal(t, float64(50), view.PostPaid[0].Items[0].PerUnit)
	require.Len(t, view.Premium, 4)
	assert.Equal(t, string(domain.ServiceNotSelected), view.Premium[0].Status)
}
