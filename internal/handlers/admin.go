// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vastra/catalog-backend/internal/models"
	"github.com/vastra/catalog-backend/internal/services"
	"github.com/vastra/catalog-backend/internal/utils"
)

type AdminHandler struct {
	catalogService  *services.CatalogService
	approvalService *services.ApprovalService
	pricing         *services.PricingEngine
}

func NewAdminHandler(catalogService *services.CatalogService, approvalService *services.ApprovalService, pricing *services.PricingEngine) *AdminHandler {
	return &AdminHandler{
		catalogService:  catalogService,
		approvalService: approvalService,
		pricing:         pricing,
	}
}

// GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.CatalogSearchParams{
		PaginationParams: params,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ApprovalStatus(statusStr)
		searchParams.Status = &status
	}
	if vendorIDStr := c.Query("vendor_id"); vendorIDStr != "" {
		if vendorID, err := uuid.Parse(vendorIDStr); err == nil {
			searchParams.VendorID = &vendorID
		}
	}

	products, total, err := h.catalogService.AdminProducts(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	views := newProductViews(h.pricing, products, nil)

	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/products/pending
func (h *AdminHandler) GetPendingProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	if c.Query("order") == "" {
		params.Order = "asc" // moderation queue defaults to oldest first
	}

	products, total, err := h.approvalService.PendingProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	views := newProductViews(h.pricing, products, nil)

	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/products/:id/approve
func (h *AdminHandler) ApproveProduct(c *gin.Context) {
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

	product, err := h.approvalService.Approve(id, actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "product approved",
		"product": gin.H{
			"id":              product.ID,
			"approval_status": product.ApprovalStatus,
		},
	})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// PUT /admin/products/:id/reject
func (h *AdminHandler) RejectProduct(c *gin.Context) {
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

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.approvalService.Reject(id, actor, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "product rejected",
		"product": gin.H{
			"id":               product.ID,
			"approval_status":  product.ApprovalStatus,
			"rejection_reason": product.RejectionReason,
		},
	})
}
