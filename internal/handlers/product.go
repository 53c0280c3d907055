// internal/handlers/product.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastra/catalog-backend/internal/models"
	"github.com/vastra/catalog-backend/internal/services"
	"github.com/vastra/catalog-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
	pricing        *services.PricingEngine
}

func NewProductHandler(catalogService *services.CatalogService, pricing *services.PricingEngine) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		pricing:        pricing,
	}
}

// VariantView is the wire shape of one concrete variant. Prices are decimal
// internally and flattened to JSON numbers only here, at the edge.
type VariantView struct {
	ID           uuid.UUID `json:"id"`
	Size         string    `json:"size"`
	Color        string    `json:"color,omitempty"`
	ColorCode    string    `json:"color_code,omitempty"`
	SKU          string    `json:"sku,omitempty"`
	Price        float64   `json:"price"`
	DisplayPrice *float64  `json:"display_price,omitempty"`
	Stock        int       `json:"stock"`
	VariantImage string    `json:"variant_image,omitempty"`
}

type ProductView struct {
	ID                 uuid.UUID             `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	CategoryID         uuid.UUID             `json:"category_id"`
	CategoryName       string                `json:"category_name,omitempty"`
	BrandID            uuid.UUID             `json:"brand_id"`
	BrandName          string                `json:"brand_name,omitempty"`
	Gender             models.Gender         `json:"gender"`
	BasePrice          float64               `json:"base_price"`
	DiscountPercentage int                   `json:"discount_percentage"`
	FinalPrice         float64               `json:"final_price"`
	DisplayPrice       *float64              `json:"display_price,omitempty"`
	Stock              int                   `json:"stock"`
	Images             []string              `json:"images"`
	ApprovalStatus     models.ApprovalStatus `json:"approval_status"`
	RejectionReason    string                `json:"rejection_reason,omitempty"`
	IsPublished        bool                  `json:"is_published"`
	VendorID           *uuid.UUID            `json:"vendor_id,omitempty"`
	Variants           []VariantView         `json:"variants"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func newProductView(pricing *services.PricingEngine, p *models.Product, rate *decimal.Decimal) ProductView {
	finalPrice := pricing.FinalPrice(p)

	view := ProductView{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		CategoryName:       p.CategoryName,
		BrandID:            p.BrandID,
		BrandName:          p.BrandName,
		Gender:             p.Gender,
		BasePrice:          p.BasePrice.InexactFloat64(),
		DiscountPercentage: p.DiscountPercentage,
		FinalPrice:         finalPrice.InexactFloat64(),
		Stock:              p.EffectiveStock(),
		Images:             p.Images,
		ApprovalStatus:     p.ApprovalStatus,
		RejectionReason:    p.RejectionReason,
		IsPublished:        p.IsPublished,
		VendorID:           p.VendorID,
		Variants:           make([]VariantView, 0, len(p.Variants)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if rate != nil {
		converted := pricing.Display(finalPrice, *rate).InexactFloat64()
		view.DisplayPrice = &converted
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		price := pricing.VariantPrice(p, v)
		variantView := VariantView{
			ID:           v.ID,
			Size:         v.Size,
			Color:        v.Color,
			ColorCode:    v.ColorCode,
			SKU:          v.SKU,
			Price:        price.InexactFloat64(),
			Stock:        v.Stock,
			VariantImage: v.VariantImage,
		}
		if rate != nil {
			converted := pricing.Display(price, *rate).InexactFloat64()
			variantView.DisplayPrice = &converted
		}
		view.Variants = append(view.Variants, variantView)
	}

	return view
}

func newProductViews(pricing *services.PricingEngine, products []models.Product, rate *decimal.Decimal) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(pricing, &products[i], rate))
	}
	return views
}

func currencyRate(c *gin.Context) *decimal.Decimal {
	rateStr := c.Query("currency_rate")
	if rateStr == "" {
		return nil
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		return nil
	}
	return &rate
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.CatalogSearchParams{
		PaginationParams: params,
	}

	if genderStr := c.Query("gender"); genderStr != "" {
		gender := models.Gender(genderStr)
		searchParams.Gender = &gender
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}
	if brandIDStr := c.Query("brand_id"); brandIDStr != "" {
		if brandID, err := uuid.Parse(brandIDStr); err == nil {
			searchParams.BrandID = &brandID
		}
	}
	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := decimal.NewFromString(priceMinStr); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}
	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := decimal.NewFromString(priceMaxStr); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	products, total, err := h.catalogService.SearchProducts(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	views := newProductViews(h.pricing, products, currencyRate(c))
	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var viewer *models.Actor
	if actor, ok := utils.ActorFromContext(c); ok {
		viewer = &actor
	}

	product, err := h.catalogService.GetProduct(id, viewer)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": newProductView(h.pricing, product, currencyRate(c)),
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor, ok := utils.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var draft services.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(actor, &draft)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": newProductView(h.pricing, product, nil),
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	actor, ok := utils.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var draft services.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(id, actor, &draft)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": newProductView(h.pricing, product, nil),
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	actor, ok := utils.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.catalogService.DeleteProduct(id, actor); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "product deleted",
	})
}

type expandVariantsRequest struct {
	Variants []models.VariantDraft `json:"variants"`
	Index    int                   `json:"index"`
}

// POST /products/variants/expand
// Stateless helper for the console editor: applies one bulk row and returns
// the full variant list with the expansion spliced in.
func (h *ProductHandler) ExpandVariants(c *gin.Context) {
	var req expandVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	expanded, err := h.catalogService.ExpandBulkVariant(req.Variants, req.Index)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"variants": expanded,
	})
}

// GET /vendor/products
func (h *ProductHandler) VendorProducts(c *gin.Context) {
	actor, ok := utils.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.VendorProducts(actor, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(newProductViews(h.pricing, products, nil), total, params)
	utils.PaginatedResponse(c, result)
}

type publishRequest struct {
	IsPublished bool `json:"is_published"`
}

// PUT /products/:id/publish
func (h *ProductHandler) PublishProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	actor, ok := utils.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.SetPublished(id, actor, req.IsPublished)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": newProductView(h.pricing, product, nil),
	})
}
