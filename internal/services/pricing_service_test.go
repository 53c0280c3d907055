// internal/services/pricing_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vastra/catalog-backend/internal/models"
)

func TestFinalPrice(t *testing.T) {
	engine := NewPricingEngine(2)

	testCases := []struct {
		name     string
		base     int64
		discount int
		want     string
	}{
		{"no discount", 1000, 0, "1000"},
		{"twenty percent off", 1000, 20, "800"},
		{"full discount", 1000, 100, "0"},
		{"rounds to minor units", 999, 33, "669.33"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Product{
				BasePrice:          decimal.NewFromInt(tc.base),
				DiscountPercentage: tc.discount,
			}
			want := decimal.RequireFromString(tc.want)
			assert.True(t, want.Equal(engine.FinalPrice(p)), "got %s", engine.FinalPrice(p))
		})
	}
}

func TestFinalPriceMonotonicInDiscount(t *testing.T) {
	engine := NewPricingEngine(2)
	p := &models.Product{BasePrice: decimal.NewFromInt(2499)}

	prev := engine.FinalPrice(p)
	for discount := 1; discount <= 100; discount++ {
		p.DiscountPercentage = discount
		current := engine.FinalPrice(p)
		assert.True(t, current.LessThanOrEqual(prev),
			"final price must not increase as the discount grows (discount=%d)", discount)
		prev = current
	}
	assert.True(t, prev.IsZero())
}

func TestVariantPriceIsNotRediscounted(t *testing.T) {
	engine := NewPricingEngine(2)
	p := &models.Product{
		BasePrice:          decimal.NewFromInt(1000),
		DiscountPercentage: 50,
	}

	v := &models.Variant{Size: "M", Price: decimal.NewFromInt(900)}
	got := engine.VariantPrice(p, v)
	assert.True(t, decimal.NewFromInt(900).Equal(got),
		"the variant override is the full sale price, the discount does not apply")

	unset := &models.Variant{Size: "L"}
	got = engine.VariantPrice(p, unset)
	assert.True(t, decimal.NewFromInt(1000).Equal(got),
		"a variant without an override falls back to the base price, not the discounted one")
}

func TestDisplayConversion(t *testing.T) {
	engine := NewPricingEngine(2)
	rate := decimal.RequireFromString("0.012") // INR -> USD-ish

	amount := decimal.NewFromInt(800)
	assert.True(t, decimal.RequireFromString("9.6").Equal(engine.Display(amount, rate)))

	identity := decimal.NewFromInt(1)
	assert.True(t, amount.Equal(engine.Display(amount, identity)))
}

func TestDisplayConversionIsLinear(t *testing.T) {
	engine := NewPricingEngine(2)
	rate := decimal.RequireFromString("1.37")

	a := decimal.NewFromInt(1250)
	b := decimal.NewFromInt(499)

	sumOfParts := engine.Display(a, rate).Add(engine.Display(b, rate))
	wholeAtOnce := engine.Display(a.Add(b), rate)

	tolerance := decimal.RequireFromString("0.01")
	assert.True(t, sumOfParts.Sub(wholeAtOnce).Abs().LessThanOrEqual(tolerance),
		"conversion must be linear within rounding tolerance: %s vs %s", sumOfParts, wholeAtOnce)
}

func TestZeroMinorUnitsRounding(t *testing.T) {
	engine := NewPricingEngine(0)
	p := &models.Product{
		BasePrice:          decimal.NewFromInt(999),
		DiscountPercentage: 33,
	}

	got := engine.FinalPrice(p)
	assert.True(t, decimal.NewFromInt(669).Equal(got),
		"a minor-unit-free currency rounds to whole units, got %s", got)
}
