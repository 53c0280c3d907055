// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vastra/catalog-backend/internal/apperrors"
	"github.com/vastra/catalog-backend/internal/models"
	"github.com/vastra/catalog-backend/internal/utils"
)

// CatalogService is the single write path for products. Every create, update
// and delete goes through it so variant expansion, approval state and pricing
// constraints are enforced together, inside one transaction.
type CatalogService struct {
	db      *gorm.DB
	pricing *PricingEngine
}

func NewCatalogService(db *gorm.DB, pricing *PricingEngine) *CatalogService {
	return &CatalogService{
		db:      db,
		pricing: pricing,
	}
}

// ProductDraft is the inbound shape for create and full-document update.
// It deliberately has no approval fields: the moderation state can only move
// through the dedicated approve/reject/resubmit paths.
type ProductDraft struct {
	Title              string                `json:"title" validate:"required,min=3,max=255"`
	Description        string                `json:"description" validate:"required"`
	CategoryID         uuid.UUID             `json:"category_id" validate:"required"`
	CategoryName       string                `json:"category_name"`
	BrandID            uuid.UUID             `json:"brand_id" validate:"required"`
	BrandName          string                `json:"brand_name"`
	Gender             models.Gender         `json:"gender" validate:"omitempty,oneof=men women unisex"`
	BasePrice          decimal.Decimal       `json:"base_price"`
	DiscountPercentage int                   `json:"discount_percentage" validate:"gte=0,lte=100"`
	Stock              int                   `json:"stock" validate:"gte=0"`
	Images             []string              `json:"images" validate:"required,min=1"`
	IsPublished        bool                  `json:"is_published"`
	Variants           []models.VariantDraft `json:"variants" validate:"dive"`
}

type CatalogSearchParams struct {
	utils.PaginationParams
	Gender     *models.Gender
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	VendorID   *uuid.UUID
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Status     *models.ApprovalStatus
}

func (s *CatalogService) validateDraft(draft *ProductDraft) error {
	if err := utils.ValidateStruct(draft); err != nil {
		return utils.FirstValidationError(err)
	}
	if draft.BasePrice.IsNegative() {
		return apperrors.NewValidationError("base_price", "base price must not be negative")
	}
	seenSKUs := make(map[string]bool, len(draft.Variants))
	for _, v := range draft.Variants {
		if v.Price.IsNegative() {
			return apperrors.NewValidationError("variants", "variant price must not be negative")
		}
		if v.SKU != "" {
			if seenSKUs[v.SKU] {
				return apperrors.NewValidationError("variants", fmt.Sprintf("duplicate sku %q", v.SKU))
			}
			seenSKUs[v.SKU] = true
		}
	}
	if models.HasUnappliedBulk(draft.Variants) {
		return apperrors.NewValidationError("variants", "apply all bundles before saving")
	}
	return nil
}

func (s *CatalogService) materializeVariants(draft *ProductDraft) []models.Variant {
	if len(draft.Variants) == 0 {
		return nil
	}
	variants := make([]models.Variant, 0, len(draft.Variants))
	for _, d := range draft.Variants {
		variants = append(variants, d.ToVariant(draft.BasePrice))
	}
	return variants
}

// ExpandBulkVariant applies one bulk template row of a draft's variant list.
// Stateless; the console editor calls it before submitting the draft.
func (s *CatalogService) ExpandBulkVariant(drafts []models.VariantDraft, idx int) ([]models.VariantDraft, error) {
	return models.ExpandBulkVariant(drafts, idx)
}

// CreateProduct validates the draft and persists the product with its
// variants in one write. The initial approval state follows the actor's
// role: vendors enter the moderation queue, admins go straight to approved.
func (s *CatalogService) CreateProduct(actor models.Actor, draft *ProductDraft) (*models.Product, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:              draft.Title,
		Description:        draft.Description,
		CategoryID:         draft.CategoryID,
		CategoryName:       draft.CategoryName,
		BrandID:            draft.BrandID,
		BrandName:          draft.BrandName,
		Gender:             draft.Gender,
		BasePrice:          draft.BasePrice,
		DiscountPercentage: draft.DiscountPercentage,
		Stock:              draft.Stock,
		Images:             draft.Images,
		IsPublished:        draft.IsPublished,
		Variants:           s.materializeVariants(draft),
	}
	if product.Gender == "" {
		product.Gender = models.GenderUnisex
	}
	product.Submit(actor)

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"actor_id":   actor.ID,
		"role":       actor.Role,
		"status":     product.ApprovalStatus,
	}).Info("Product created")

	go s.writeAuditLog(actor, "CREATE_PRODUCT", product.ID, nil, models.JSONB{
		"title":  product.Title,
		"status": product.ApprovalStatus,
	})

	return product, nil
}

// UpdateProduct is a full-document replace. Vendors may only touch their own
// products; editing a rejected one resubmits it to the queue, while admin
// edits never move the approval state. The product row and its variant set
// are replaced in a single transaction.
func (s *CatalogService) UpdateProduct(id uuid.UUID, actor models.Actor, draft *ProductDraft) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !actor.IsAdmin() && !product.OwnedBy(actor) {
		return nil, apperrors.NewAuthorizationError("not allowed to update this product")
	}

	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	oldStatus := product.ApprovalStatus

	product.Title = draft.Title
	product.Description = draft.Description
	product.CategoryID = draft.CategoryID
	product.CategoryName = draft.CategoryName
	product.BrandID = draft.BrandID
	product.BrandName = draft.BrandName
	product.Gender = draft.Gender
	if product.Gender == "" {
		product.Gender = models.GenderUnisex
	}
	product.BasePrice = draft.BasePrice
	product.DiscountPercentage = draft.DiscountPercentage
	product.Stock = draft.Stock
	product.Images = draft.Images
	if actor.IsAdmin() {
		product.IsPublished = draft.IsPublished
	}
	product.Resubmit(actor)

	variants := s.materializeVariants(draft)
	for i := range variants {
		variants[i].ProductID = product.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("product_id = ?", product.ID).Delete(&models.Variant{}).Error; err != nil {
			return fmt.Errorf("failed to replace variants: %w", err)
		}
		if len(variants) > 0 {
			if err := tx.Create(&variants).Error; err != nil {
				return fmt.Errorf("failed to replace variants: %w", err)
			}
		}
		product.Variants = nil
		if err := tx.Omit("Variants").Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	if oldStatus != product.ApprovalStatus {
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"actor_id":   actor.ID,
			"from":       oldStatus,
			"to":         product.ApprovalStatus,
		}).Info("Product resubmitted for review")
	}

	go s.writeAuditLog(actor, "UPDATE_PRODUCT", product.ID,
		models.JSONB{"status": oldStatus},
		models.JSONB{"title": product.Title, "status": product.ApprovalStatus})

	return &product, nil
}

// DeleteProduct removes a product. Admins may delete any product, vendors
// only their own. Order history keeps its own product snapshots, so no
// cascade beyond the variant set is needed.
func (s *CatalogService) DeleteProduct(id uuid.UUID, actor models.Actor) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("product", id.String())
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !actor.IsAdmin() && !product.OwnedBy(actor) {
		return apperrors.NewAuthorizationError("not allowed to delete this product")
	}

	if err := s.db.Select("Variants").Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	go s.writeAuditLog(actor, "DELETE_PRODUCT", id, models.JSONB{"title": product.Title}, nil)

	return nil
}

// GetProduct fetches one product. Unapproved or unpublished products are
// only visible to admins and the owning vendor; everyone else gets the same
// not-found answer as for a missing id.
func (s *CatalogService) GetProduct(id uuid.UUID, viewer *models.Actor) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").Preload("Vendor").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.StorefrontVisible() {
		if viewer == nil || (!viewer.IsAdmin() && !product.OwnedBy(*viewer)) {
			return nil, apperrors.NewNotFoundError("product", id.String())
		}
	}

	return &product, nil
}

// SearchProducts lists storefront products: approved and published only,
// with the usual listing filters.
func (s *CatalogService) SearchProducts(params CatalogSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Variants").
		Where("approval_status = ?", models.ApprovalStatusApproved).
		Where("is_published = ?", true)

	return s.runSearch(query, params)
}

// AdminProducts lists every product regardless of visibility, optionally
// filtered by approval status. Admin console only.
func (s *CatalogService) AdminProducts(params CatalogSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Variants").Preload("Vendor")
	if params.Status != nil {
		query = query.Where("approval_status = ?", *params.Status)
	}
	return s.runSearch(query, params)
}

// VendorProducts lists the calling vendor's own products in any state.
func (s *CatalogService) VendorProducts(actor models.Actor, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Variants").
		Where("vendor_id = ?", actor.ID)
	return s.runSearch(query, CatalogSearchParams{PaginationParams: params})
}

func (s *CatalogService) runSearch(query *gorm.DB, params CatalogSearchParams) ([]models.Product, int64, error) {
	if params.Gender != nil {
		query = query.Where("gender = ?", *params.Gender)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.BrandID != nil {
		query = query.Where("brand_id = ?", *params.BrandID)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.PriceMin != nil {
		query = query.Where("base_price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("base_price <= ?", *params.PriceMax)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "base_price", "approval_status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// SetPublished toggles storefront publication. The flag is independent of
// approval: an approved-but-unpublished product stays off the storefront.
func (s *CatalogService) SetPublished(id uuid.UUID, actor models.Actor, published bool) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !actor.IsAdmin() && !product.OwnedBy(actor) {
		return nil, apperrors.NewAuthorizationError("not allowed to publish this product")
	}

	if err := s.db.Model(&product).Update("is_published", published).Error; err != nil {
		return nil, fmt.Errorf("failed to update publication flag: %w", err)
	}
	product.IsPublished = published

	go s.writeAuditLog(actor, "SET_PUBLISHED", id, nil, models.JSONB{"is_published": published})

	return &product, nil
}

func (s *CatalogService) writeAuditLog(actor models.Actor, action string, productID uuid.UUID, oldValues, newValues models.JSONB) {
	actorID := actor.ID
	resourceID := productID
	entry := &models.AuditLog{
		UserID:       &actorID,
		Action:       action,
		ResourceType: "product",
		ResourceID:   &resourceID,
		OldValues:    oldValues,
		NewValues:    newValues,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).Error("Failed to write audit log")
	}
}
