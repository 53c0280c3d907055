// internal/services/pricing_service.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/vastra/catalog-backend/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// PricingEngine computes sale prices. All arithmetic is decimal; stored
// amounts stay in the base currency and conversion happens only at
// presentation time.
type PricingEngine struct {
	minorUnits int32
}

// NewPricingEngine returns an engine rounding to the given number of minor
// units (2 for paise/cents, 0 for a minor-unit-free currency).
func NewPricingEngine(minorUnits int32) *PricingEngine {
	return &PricingEngine{minorUnits: minorUnits}
}

// FinalPrice is the discount-adjusted sale price of the product itself:
// basePrice × (1 − discount/100), rounded to minor units. Discounts outside
// [0,100] are rejected at write time and never reach this function.
func (e *PricingEngine) FinalPrice(p *models.Product) decimal.Decimal {
	discount := decimal.NewFromInt(int64(p.DiscountPercentage))
	factor := oneHundred.Sub(discount).Div(oneHundred)
	return p.BasePrice.Mul(factor).Round(e.minorUnits)
}

// VariantPrice is the price for a concrete size/color selection. A variant
// price is a full authoritative override and is never re-discounted; a
// variant saved without one inherits the base price.
func (e *PricingEngine) VariantPrice(p *models.Product, v *models.Variant) decimal.Decimal {
	if v.Price.IsZero() {
		return p.BasePrice.Round(e.minorUnits)
	}
	return v.Price.Round(e.minorUnits)
}

// Display converts a stored amount into the viewer's currency. Pure function
// of its inputs; stored data is never mutated by conversion.
func (e *PricingEngine) Display(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(e.minorUnits)
}
