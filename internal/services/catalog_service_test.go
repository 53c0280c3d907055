// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastra/catalog-backend/internal/apperrors"
	"github.com/vastra/catalog-backend/internal/models"
)

// Draft validation and bulk expansion never touch the database, so the
// service under test runs without one.
func newTestCatalogService() *CatalogService {
	return NewCatalogService(nil, NewPricingEngine(2))
}

func validDraft() *ProductDraft {
	return &ProductDraft{
		Title:              "Linen Kurta",
		Description:        "Handwoven linen kurta with wooden buttons.",
		CategoryID:         uuid.New(),
		CategoryName:       "Kurtas",
		BrandID:            uuid.New(),
		BrandName:          "Threadworks",
		Gender:             models.GenderMen,
		BasePrice:          decimal.NewFromInt(1499),
		DiscountPercentage: 10,
		Stock:              25,
		Images:             []string{"https://cdn.vastra.shop/kurta-front.jpg"},
		Variants: []models.VariantDraft{
			{Size: "M", SKU: "KURTA-M", Stock: 10},
			{Size: "L", SKU: "KURTA-L", Stock: 15},
		},
	}
}

func TestValidateDraftAcceptsCompleteDraft(t *testing.T) {
	s := newTestCatalogService()
	assert.NoError(t, s.validateDraft(validDraft()))
}

func TestValidateDraftRejectsIncompleteDrafts(t *testing.T) {
	s := newTestCatalogService()

	testCases := []struct {
		name      string
		mutate    func(d *ProductDraft)
		wantField string
	}{
		{"missing title", func(d *ProductDraft) { d.Title = "" }, "title"},
		{"title too short", func(d *ProductDraft) { d.Title = "ab" }, "title"},
		{"missing description", func(d *ProductDraft) { d.Description = "" }, "description"},
		{"missing category", func(d *ProductDraft) { d.CategoryID = uuid.Nil }, "category_id"},
		{"missing brand", func(d *ProductDraft) { d.BrandID = uuid.Nil }, "brand_id"},
		{"no images", func(d *ProductDraft) { d.Images = nil }, "images"},
		{"discount above hundred", func(d *ProductDraft) { d.DiscountPercentage = 101 }, "discount_percentage"},
		{"negative discount", func(d *ProductDraft) { d.DiscountPercentage = -1 }, "discount_percentage"},
		{"negative stock", func(d *ProductDraft) { d.Stock = -5 }, "stock"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)

			var validationErr *apperrors.ValidationError
			err := s.validateDraft(draft)
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestValidateDraftRejectsNegativePrices(t *testing.T) {
	s := newTestCatalogService()

	draft := validDraft()
	draft.BasePrice = decimal.NewFromInt(-1)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, s.validateDraft(draft), &validationErr)
	assert.Equal(t, "base_price", validationErr.Field)

	draft = validDraft()
	draft.Variants[0].Price = decimal.NewFromInt(-1)
	require.ErrorAs(t, s.validateDraft(draft), &validationErr)
	assert.Equal(t, "variants", validationErr.Field)
}

func TestValidateDraftRejectsDuplicateSKUs(t *testing.T) {
	s := newTestCatalogService()

	draft := validDraft()
	draft.Variants[1].SKU = draft.Variants[0].SKU

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, s.validateDraft(draft), &validationErr)
	assert.Equal(t, "variants", validationErr.Field)
}

func TestValidateDraftRejectsUnappliedBulkRows(t *testing.T) {
	s := newTestCatalogService()

	draft := validDraft()
	draft.Variants = append(draft.Variants, models.VariantDraft{
		Bulk:  true,
		Sizes: []string{"XL", "XXL"},
		SKU:   "KURTA",
	})

	var validationErr *apperrors.ValidationError
	err := s.validateDraft(draft)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "variants", validationErr.Field)
	assert.Contains(t, validationErr.Message, "apply all bundles")
}

func TestExpandThenValidate(t *testing.T) {
	s := newTestCatalogService()

	draft := validDraft()
	draft.Variants = []models.VariantDraft{
		{Bulk: true, Sizes: []string{"S", "M", "L"}, SKU: "TSHIRT", Stock: 5},
	}

	expanded, err := s.ExpandBulkVariant(draft.Variants, 0)
	require.NoError(t, err)
	require.Len(t, expanded, 3)

	draft.Variants = expanded
	assert.NoError(t, s.validateDraft(draft), "an expanded draft passes validation")
}

func TestMaterializeVariantsInheritsBasePrice(t *testing.T) {
	s := newTestCatalogService()

	draft := validDraft()
	draft.Variants = []models.VariantDraft{
		{Size: "M", SKU: "KURTA-M", Stock: 10},
		{Size: "L", SKU: "KURTA-L", Price: decimal.NewFromInt(1599), Stock: 5},
	}

	variants := s.materializeVariants(draft)
	require.Len(t, variants, 2)
	assert.True(t, draft.BasePrice.Equal(variants[0].Price))
	assert.True(t, decimal.NewFromInt(1599).Equal(variants[1].Price))
}
