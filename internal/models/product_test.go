// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastra/catalog-backend/internal/apperrors"
)

func vendorActor() Actor {
	return Actor{ID: uuid.New(), Username: "threadworks", Role: UserRoleVendor}
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Username: "moderator", Role: UserRoleAdmin}
}

func TestSubmitVendorProduct(t *testing.T) {
	vendor := vendorActor()
	p := &Product{Title: "Linen Shirt", IsPublished: true}

	p.Submit(vendor)

	assert.Equal(t, ApprovalStatusPending, p.ApprovalStatus)
	assert.False(t, p.IsPublished, "vendor submissions are forced unpublished")
	require.NotNil(t, p.VendorID)
	assert.Equal(t, vendor.ID, *p.VendorID)
	assert.True(t, p.VendorAuthored())
}

func TestSubmitAdminProduct(t *testing.T) {
	p := &Product{Title: "Linen Shirt", IsPublished: true}

	p.Submit(adminActor())

	assert.Equal(t, ApprovalStatusApproved, p.ApprovalStatus)
	assert.True(t, p.IsPublished, "admin submissions keep the publish flag as given")
	assert.Nil(t, p.VendorID)
	assert.False(t, p.VendorAuthored())
}

func TestApproveFromPending(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending, RejectionReason: "stale reason"}

	err := p.Approve(adminActor())

	require.NoError(t, err)
	assert.Equal(t, ApprovalStatusApproved, p.ApprovalStatus)
	assert.Empty(t, p.RejectionReason, "approval clears any stale rejection reason")
}

func TestApproveRequiresAdmin(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending}

	var authErr *apperrors.AuthorizationError
	err := p.Approve(vendorActor())
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, ApprovalStatusPending, p.ApprovalStatus)
}

func TestApproveTwiceIsStateConflict(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending}
	require.NoError(t, p.Approve(adminActor()))

	var conflictErr *apperrors.StateConflictError
	err := p.Approve(adminActor())
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, ApprovalStatusApproved, p.ApprovalStatus, "state is unchanged on conflict")
}

func TestRejectFromPending(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending}

	err := p.Reject(adminActor(), "bad fit")

	require.NoError(t, err)
	assert.Equal(t, ApprovalStatusRejected, p.ApprovalStatus)
	assert.Equal(t, "bad fit", p.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending}

	var validationErr *apperrors.ValidationError
	err := p.Reject(adminActor(), "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reason", validationErr.Field)
	assert.Equal(t, ApprovalStatusPending, p.ApprovalStatus)
}

func TestRejectRequiresAdmin(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusPending}

	var authErr *apperrors.AuthorizationError
	err := p.Reject(vendorActor(), "bad fit")
	require.ErrorAs(t, err, &authErr)
}

func TestRejectOutsidePendingIsStateConflict(t *testing.T) {
	p := &Product{ApprovalStatus: ApprovalStatusApproved}

	var conflictErr *apperrors.StateConflictError
	err := p.Reject(adminActor(), "bad fit")
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, ApprovalStatusApproved, p.ApprovalStatus)
}

func TestResubmitRejectedVendorProduct(t *testing.T) {
	vendor := vendorActor()
	id := vendor.ID
	p := &Product{VendorID: &id, ApprovalStatus: ApprovalStatusRejected, RejectionReason: "bad fit"}

	p.Resubmit(vendor)

	assert.Equal(t, ApprovalStatusPending, p.ApprovalStatus)
	assert.Empty(t, p.RejectionReason)
}

func TestResubmitLeavesOtherStatesAlone(t *testing.T) {
	vendor := vendorActor()
	id := vendor.ID

	approved := &Product{VendorID: &id, ApprovalStatus: ApprovalStatusApproved}
	approved.Resubmit(vendor)
	assert.Equal(t, ApprovalStatusApproved, approved.ApprovalStatus)

	// Admin edits never move the approval state, rejected included.
	rejected := &Product{VendorID: &id, ApprovalStatus: ApprovalStatusRejected, RejectionReason: "bad fit"}
	rejected.Resubmit(adminActor())
	assert.Equal(t, ApprovalStatusRejected, rejected.ApprovalStatus)
	assert.Equal(t, "bad fit", rejected.RejectionReason)
}

func TestStorefrontVisible(t *testing.T) {
	testCases := []struct {
		name      string
		status    ApprovalStatus
		published bool
		want      bool
	}{
		{"approved and published", ApprovalStatusApproved, true, true},
		{"approved but unpublished", ApprovalStatusApproved, false, false},
		{"pending and published", ApprovalStatusPending, true, false},
		{"rejected and published", ApprovalStatusRejected, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Product{ApprovalStatus: tc.status, IsPublished: tc.published}
			assert.Equal(t, tc.want, p.StorefrontVisible())
		})
	}
}

func TestEffectiveStock(t *testing.T) {
	noVariants := &Product{Stock: 7}
	assert.Equal(t, 7, noVariants.EffectiveStock(), "product stock is the fallback")

	withVariants := &Product{
		Stock: 7,
		Variants: []Variant{
			{Size: "S", Stock: 2},
			{Size: "M", Stock: 3},
		},
	}
	assert.Equal(t, 5, withVariants.EffectiveStock(), "variant stock is authoritative")
}
