package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/model"
	"backend/pkg/apperror"
	"backend/pkg/pagination"
)

func TestListReportedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "lena", model.RoleAdmin)

	env.reportItem(t, admin.ID.String(), "Red Scarf")
	env.reportItem(t, admin.ID.String(), "Blue Scarf")
	env.reportItem(t, admin.ID.String(), "Water Bottle")

	t.Run("pages through results", func(t *testing.T) {
		items, total, err := env.claimService.ListReportedItems(ctx, "", pagination.Params{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, items, 2)
	})

	t.Run("search narrows the total", func(t *testing.T) {
		items, total, err := env.claimService.ListReportedItems(ctx, "scarf", pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, items, 2)
	})
}

func TestSubmitClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "warden", model.RoleAdmin)
	student := env.createUser(t, "carol", model.RoleStudent)

	t.Run("requires proof photo", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Umbrella")
		_, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String()})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		_, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: "00000000-0000-0000-0000-000000000000", Photo: "proof.jpg"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("creates pending claim", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Wallet")
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg", ClaimNotes: "Blue leather"})
		require.NoError(t, err)
		assert.Equal(t, model.ClaimStatusPending, claim.Status)
		assert.Equal(t, student.Username, claim.Username)
	})

	t.Run("one pending claim per user per item", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Backpack")
		_, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		require.NoError(t, err)

		_, err = env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof2.jpg"})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("rejects claims on claimed items", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Headphones")
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		require.NoError(t, err)
		_, err = env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusApproved)
		require.NoError(t, err)

		other := env.createUser(t, "dave", model.RoleStudent)
		_, err = env.claimService.SubmitClaim(ctx, other.ID.String(), other.Username, other.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestResolveClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "porter", model.RoleAdmin)
	student := env.createUser(t, "erin", model.RoleStudent)

	newClaim := func(t *testing.T, itemName string) *model.ClaimRequest {
		item := env.reportItem(t, admin.ID.String(), itemName)
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg", ClaimNotes: "Mine"})
		require.NoError(t, err)
		return claim
	}

	t.Run("approval updates claim and item together", func(t *testing.T) {
		claim := newClaim(t, "Calculator")

		resolved, err := env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, model.ClaimStatusApproved, resolved.Status)
		require.NotNil(t, resolved.ApprovalAdminID)
		assert.Equal(t, admin.ID, *resolved.ApprovalAdminID)

		item, err := env.reported.GetByID(ctx, claim.ItemID.String())
		require.NoError(t, err)
		assert.Equal(t, model.ReportedStatusClaimed, item.Status)
		assert.Equal(t, student.Username, item.ClaimedByUser)
		assert.Equal(t, "Mine", item.ClaimNotes)
	})

	t.Run("rejection leaves item unclaimed", func(t *testing.T) {
		claim := newClaim(t, "Notebook")

		resolved, err := env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, model.ClaimStatusRejected, resolved.Status)

		item, err := env.reported.GetByID(ctx, claim.ItemID.String())
		require.NoError(t, err)
		assert.Equal(t, model.ReportedStatusUnclaimed, item.Status)
	})

	t.Run("double resolution conflicts", func(t *testing.T) {
		claim := newClaim(t, "Charger")
		_, err := env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusApproved)
		require.NoError(t, err)

		_, err = env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusRejected)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("decision must be approved or rejected", func(t *testing.T) {
		claim := newClaim(t, "Scarf")
		_, err := env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), "maybe")
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})
}

func TestCancelClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "keeper", model.RoleAdmin)
	student := env.createUser(t, "frank", model.RoleStudent)

	t.Run("owner can cancel pending claim", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Glasses")
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		require.NoError(t, err)

		require.NoError(t, env.claimService.CancelClaim(ctx, claim.ID.String(), student.ID.String()))

		// A fresh claim on the same item is allowed again.
		_, err = env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		assert.NoError(t, err)
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Keys")
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		require.NoError(t, err)

		err = env.claimService.CancelClaim(ctx, claim.ID.String(), admin.ID.String())
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("resolved claims cannot be cancelled", func(t *testing.T) {
		item := env.reportItem(t, admin.ID.String(), "Badge")
		claim, err := env.claimService.SubmitClaim(ctx, student.ID.String(), student.Username, student.StudentID,
			SubmitClaimRequest{ItemID: item.ID.String(), Photo: "proof.jpg"})
		require.NoError(t, err)
		_, err = env.claimService.ResolveClaim(ctx, claim.ID.String(), admin.ID.String(), model.ClaimStatusRejected)
		require.NoError(t, err)

		err = env.claimService.CancelClaim(ctx, claim.ID.String(), student.ID.String())
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}
