// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/vastra/catalog-backend/internal/apperrors"
)

type Product struct {
	BaseModel
	Title              string          `json:"title" gorm:"size:255;not null"`
	Description        string          `json:"description" gorm:"type:text"`
	CategoryID         uuid.UUID       `json:"category_id" gorm:"type:uuid;not null;index"`
	CategoryName       string          `json:"category_name" gorm:"size:100;index"`
	BrandID            uuid.UUID       `json:"brand_id" gorm:"type:uuid;not null;index"`
	BrandName          string          `json:"brand_name" gorm:"size:100;index"`
	Gender             Gender          `json:"gender" gorm:"type:varchar(10);default:'unisex';index"`
	BasePrice          decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);not null"`
	DiscountPercentage int             `json:"discount_percentage" gorm:"default:0"`
	Stock              int             `json:"stock" gorm:"default:0"`
	Images             pq.StringArray  `json:"images" gorm:"type:text[]"`
	ApprovalStatus     ApprovalStatus  `json:"approval_status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason    string          `json:"rejection_reason,omitempty" gorm:"type:text"`
	IsPublished        bool            `json:"is_published" gorm:"default:false;index"`
	VendorID           *uuid.UUID      `json:"vendor_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Vendor   *User     `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Variants []Variant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// VendorAuthored reports whether the product was submitted by a vendor.
// A nil VendorID means an admin created it directly in the console.
func (p *Product) VendorAuthored() bool {
	return p.VendorID != nil
}

// StorefrontVisible is the single visibility rule: a product shows on the
// storefront iff it is approved and the owner has published it.
func (p *Product) StorefrontVisible() bool {
	return p.ApprovalStatus == ApprovalStatusApproved && p.IsPublished
}

// OwnedBy reports whether the actor is the submitting vendor.
func (p *Product) OwnedBy(actor Actor) bool {
	return p.VendorID != nil && *p.VendorID == actor.ID
}

// EffectiveStock returns the sellable quantity. When variants exist they are
// authoritative; the product-level stock is only a fallback.
func (p *Product) EffectiveStock() int {
	if len(p.Variants) == 0 {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Submit sets the initial approval state for a new product. Vendor
// submissions always enter moderation unpublished; admin-authored products
// skip the queue and keep the publish flag they were given.
func (p *Product) Submit(actor Actor) {
	if actor.IsAdmin() {
		p.ApprovalStatus = ApprovalStatusApproved
		p.VendorID = nil
		return
	}
	id := actor.ID
	p.VendorID = &id
	p.ApprovalStatus = ApprovalStatusPending
	p.IsPublished = false
	p.RejectionReason = ""
}

// Approve moves a pending product to approved. Only admins may call it, and
// only from the pending state; approving an already-decided product would
// silently erase a rejection reason or override direct admin authorship.
func (p *Product) Approve(actor Actor) error {
	if !actor.IsAdmin() {
		return apperrors.NewAuthorizationError("only admins may approve products")
	}
	if p.ApprovalStatus != ApprovalStatusPending {
		return apperrors.NewStateConflictError("approve", string(p.ApprovalStatus))
	}
	p.ApprovalStatus = ApprovalStatusApproved
	p.RejectionReason = ""
	return nil
}

// Reject moves a pending product to rejected with a mandatory reason.
func (p *Product) Reject(actor Actor, reason string) error {
	if !actor.IsAdmin() {
		return apperrors.NewAuthorizationError("only admins may reject products")
	}
	if reason == "" {
		return apperrors.NewValidationError("reason", "rejection reason is required")
	}
	if p.ApprovalStatus != ApprovalStatusPending {
		return apperrors.NewStateConflictError("reject", string(p.ApprovalStatus))
	}
	p.ApprovalStatus = ApprovalStatusRejected
	p.RejectionReason = reason
	return nil
}

// Resubmit returns a rejected vendor product to the moderation queue after an
// edit. Admin edits never touch the approval state, so this only applies to
// the owning vendor.
func (p *Product) Resubmit(actor Actor) {
	if actor.IsAdmin() {
		return
	}
	if p.ApprovalStatus == ApprovalStatusRejected {
		p.ApprovalStatus = ApprovalStatusPending
		p.RejectionReason = ""
	}
}
