package quoting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

func TestApplyDiscounts(t *testing.T) {
	kombo := &domain.Kombo{
		Discount:            dec("0.10"),
		ProductsIncluded:    []domain.ProductType{domain.ProductImob},
		AddonsIncluded:      []domain.AddonKey{domain.AddonLeads},
		FreeImplementations: []string{"leads"},
		DiscountOrder:       2,
	}

	tests := []struct {
		name               string
		cycle              domain.PaymentCycle
		kombo              *domain.Kombo
		lineKey            string
		expectedAfterCycle string
		expectedAfterKombo string
		expectedApplied    bool
	}{
		{
			name:               "Desconto do ciclo anual (20%) seguido do kombo (10%)",
			cycle:              cycle(12, 3, domain.FormulaDiscount, "0.20"),
			kombo:              kombo,
			lineKey:            "imob",
			expectedAfterCycle: "800",
			expectedAfterKombo: "720",
			expectedApplied:    true,
		},
		{
			name:               "Ciclo com fórmula aditiva aplicado antes do kombo",
			cycle:              cycle(12, 3, domain.FormulaAdd, "-200"),
			kombo:              kombo,
			lineKey:            "imob",
			expectedAfterCycle: "800",
			expectedAfterKombo: "720",
			expectedApplied:    true,
		},
		{
			name:               "Multiplicador mensal sem kombo",
			cycle:              cycle(1, 1, domain.FormulaMultiply, "1.25"),
			kombo:              nil,
			lineKey:            "imob",
			expectedAfterCycle: "1250",
			expectedAfterKombo: "1250",
			expectedApplied:    false,
		},
		{
			name:               "Linha fora do kombo recebe apenas o ciclo",
			cycle:              cycle(12, 3, domain.FormulaDiscount, "0.20"),
			kombo:              kombo,
			lineKey:            "locacao",
			expectedAfterCycle: "800",
			expectedAfterKombo: "800",
			expectedApplied:    false,
		},
		{
			name:               "Add-on incluído no kombo",
			cycle:              cycle(12, 3, domain.FormulaMultiply, "1"),
			kombo:              kombo,
			lineKey:            "leads",
			expectedAfterCycle: "1000",
			expectedAfterKombo: "900",
			expectedApplied:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ApplyDiscounts(dec("1000"), tt.cycle, tt.kombo, tt.lineKey)
			require.NoError(t, err)

			assertDecimal(t, tt.expectedAfterCycle, price.AfterCycle)
			assertDecimal(t, tt.expectedAfterKombo, price.AfterKombo)
			assert.Equal(t, tt.expectedApplied, price.KomboApplied)
		})
	}
}

func TestApplyDiscounts_OrderMatters(t *testing.T) {
	additive := cycle(12, 3, domain.FormulaAdd, "-200")
	kombo := &domain.Kombo{Discount: dec("0.10"), ProductsIncluded: []domain.ProductType{domain.ProductImob}, DiscountOrder: 2}

	price, err := ApplyDiscounts(dec("1000"), additive, kombo, "imob")
	require.NoError(t, err)

	// kombo antes do ciclo: 1000 x 0,9 - 200 = 700
	reversed := dec("1000").Mul(dec("0.9")).Add(dec("-200"))

	assertDecimal(t, "720", price.AfterKombo)
	assert.False(t, price.AfterKombo.Equal(reversed))
}

func TestApplyDiscounts_IgnoresDisplayFields(t *testing.T) {
	c := cycle(12, 3, domain.FormulaMultiply, "0.9")
	c.Multiplier = dec("0.5")
	c.DiscountVsMonthly = dec("0.5")

	price, err := ApplyDiscounts(dec("1000"), c, nil, "imob")
	require.NoError(t, err)

	assertDecimal(t, "900", price.AfterCycle)
}

func TestApplyDiscounts_UnknownFormula(t *testing.T) {
	c := cycle(12, 3, domain.FormulaOperation("power"), "2")

	_, err := ApplyDiscounts(dec("1000"), c, nil, "imob")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCycle))
	assert.True(t, IsConfigError(err))
}

func TestImplementationFee(t *testing.T) {
	kombo := &domain.Kombo{FreeImplementations: []string{"leads", "imob"}}

	fee, waived := ImplementationFee(dec("1497"), kombo, "leads")
	assert.True(t, waived)
	assertDecimal(t, "0", fee)

	fee, waived = ImplementationFee(dec("1497"), kombo, "locacao")
	assert.False(t, waived)
	assertDecimal(t, "1497", fee)

	fee, waived = ImplementationFee(dec("1497"), nil, "leads")
	assert.False(t, waived)
	assertDecimal(t, "1497", fee)
}
