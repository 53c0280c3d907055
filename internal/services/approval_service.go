// internal/services/approval_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vastra/catalog-backend/internal/apperrors"
	"github.com/vastra/catalog-backend/internal/models"
	"github.com/vastra/catalog-backend/internal/utils"
)

// ApprovalService runs the moderation queue. The transition rules themselves
// live on models.Product; this service loads the record, applies one
// transition and persists it, so a decision is a single read-modify-write.
type ApprovalService struct {
	db *gorm.DB
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{db: db}
}

// PendingProducts is the admin moderation queue, oldest first by default.
func (s *ApprovalService) PendingProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Variants").Preload("Vendor").
		Where("approval_status = ?", models.ApprovalStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending products: %w", err)
	}

	return products, total, nil
}

// Approve moves a pending product to approved and clears any stale
// rejection reason.
func (s *ApprovalService) Approve(productID uuid.UUID, actor models.Actor) (*models.Product, error) {
	return s.transition(productID, actor, "APPROVE_PRODUCT", func(p *models.Product) error {
		return p.Approve(actor)
	})
}

// Reject moves a pending product to rejected. The reason is mandatory and is
// surfaced to the vendor verbatim.
func (s *ApprovalService) Reject(productID uuid.UUID, actor models.Actor, reason string) (*models.Product, error) {
	return s.transition(productID, actor, "REJECT_PRODUCT", func(p *models.Product) error {
		return p.Reject(actor, reason)
	})
}

func (s *ApprovalService) transition(productID uuid.UUID, actor models.Actor, action string, apply func(*models.Product) error) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Vendor").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", productID.String())
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldStatus := product.ApprovalStatus
	if err := apply(&product); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"approval_status":  product.ApprovalStatus,
		"rejection_reason": product.RejectionReason,
	}
	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to persist approval decision: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"admin_id":   actor.ID,
		"from":       oldStatus,
		"to":         product.ApprovalStatus,
		"reason":     product.RejectionReason,
	}).Info("Approval decision recorded")

	go s.writeAuditLog(actor, action, product.ID, oldStatus, &product)

	return &product, nil
}

func (s *ApprovalService) writeAuditLog(actor models.Actor, action string, productID uuid.UUID, oldStatus models.ApprovalStatus, product *models.Product) {
	actorID := actor.ID
	resourceID := productID
	entry := &models.AuditLog{
		UserID:       &actorID,
		Action:       action,
		ResourceType: "product",
		ResourceID:   &resourceID,
		OldValues:    models.JSONB{"approval_status": oldStatus},
		NewValues: models.JSONB{
			"approval_status":  product.ApprovalStatus,
			"rejection_reason": product.RejectionReason,
		},
	}
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).Error("Failed to write audit log")
	}
}
