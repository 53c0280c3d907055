// internal/models/variant.go
package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastra/catalog-backend/internal/apperrors"
)

// Variant is one concrete size/color combination of a product. Variants have
// no identity outside their product; they are replaced wholesale on edit.
type Variant struct {
	BaseModel
	ProductID    uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	Size         string          `json:"size" gorm:"size:50;not null"`
	Color        string          `json:"color" gorm:"size:50"`
	ColorCode    string          `json:"color_code" gorm:"size:20"`
	SKU          string          `json:"sku" gorm:"size:100"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock        int             `json:"stock" gorm:"default:0"`
	VariantImage string          `json:"variant_image,omitempty" gorm:"type:text"`
}

// VariantDraft is the editing shape a variant arrives in before persistence.
// A row with Bulk set holds a set of sizes instead of one and must be
// expanded into concrete rows before the product can be saved.
type VariantDraft struct {
	Bulk         bool            `json:"bulk"`
	Size         string          `json:"size"`
	Sizes        []string        `json:"sizes,omitempty"`
	Color        string          `json:"color"`
	ColorCode    string          `json:"color_code"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock" validate:"gte=0"`
	VariantImage string          `json:"variant_image,omitempty"`
}

// ExpandBulkVariant replaces the bulk row at idx with one concrete row per
// selected size, preserving the position of every other row. Expanding a row
// that is not bulk is a no-op, so applying twice is safe.
func ExpandBulkVariant(drafts []VariantDraft, idx int) ([]VariantDraft, error) {
	if idx < 0 || idx >= len(drafts) {
		return nil, apperrors.NewValidationError("variant", fmt.Sprintf("no variant row at index %d", idx))
	}

	row := drafts[idx]
	if !row.Bulk {
		return drafts, nil
	}
	if len(row.Sizes) == 0 {
		return nil, apperrors.NewValidationError("sizes", "select at least one size")
	}

	expanded := make([]VariantDraft, 0, len(row.Sizes))
	for _, size := range row.Sizes {
		concrete := row
		concrete.Bulk = false
		concrete.Sizes = nil
		concrete.Size = size
		concrete.SKU = deriveSKU(row.SKU, size)
		expanded = append(expanded, concrete)
	}

	result := make([]VariantDraft, 0, len(drafts)+len(expanded)-1)
	result = append(result, drafts[:idx]...)
	result = append(result, expanded...)
	result = append(result, drafts[idx+1:]...)
	return result, nil
}

func deriveSKU(templateSKU, size string) string {
	if templateSKU == "" {
		return ""
	}
	return templateSKU + "-" + size
}

// HasUnappliedBulk reports whether any bulk row is still unexpanded. Saving
// a product with one outstanding is a hard validation failure; auto-expanding
// could hand the operator SKUs they never reviewed.
func HasUnappliedBulk(drafts []VariantDraft) bool {
	for _, d := range drafts {
		if d.Bulk {
			return true
		}
	}
	return false
}

// ToVariant materializes a concrete draft. A zero price means the variant
// was created without an override and inherits the product's base price.
func (d VariantDraft) ToVariant(basePrice decimal.Decimal) Variant {
	price := d.Price
	if price.IsZero() {
		price = basePrice
	}
	return Variant{
		Size:         d.Size,
		Color:        d.Color,
		ColorCode:    d.ColorCode,
		SKU:          d.SKU,
		Price:        price,
		Stock:        d.Stock,
		VariantImage: d.VariantImage,
	}
}
