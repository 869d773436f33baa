package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperror"
	"backend/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type ReportLostItemRequest struct {
	Name        string
	Date        time.Time
	Location    string
	Photo       string
	Description string
}

type SubmitClaimRequest struct {
	ItemID     string
	ClaimNotes string
	Photo      string // proof of ownership, mandatory
}

// ClaimService owns the lost-item and claim state machines:
// ReportedItem unclaimed -> claimed (monotonic);
// ClaimRequest pending -> approved | rejected, pending deletable by owner.
type ClaimService interface {
	ReportLostItem(ctx context.Context, reporterID string, req ReportLostItemRequest) (*model.ReportedItem, error)
	ListReportedItems(ctx context.Context, query string, p pagination.Params) ([]model.ReportedItem, int64, error)
	SubmitClaim(ctx context.Context, userID, username, studentID string, req SubmitClaimRequest) (*model.ClaimRequest, error)
	ListClaimRequests(ctx context.Context, status string) ([]repository.ClaimDetail, error)
	ResolveClaim(ctx context.Context, claimID, adminID, decision string) (*model.ClaimRequest, error)
	CancelClaim(ctx context.Context, claimID, userID string) error
}

type claimService struct {
	reported  repository.ReportedItemRepository
	claims    repository.ClaimRepository
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewClaimService(
	reported repository.ReportedItemRepository,
	claims repository.ClaimRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ClaimService {
	return &claimService{
		reported:  reported,
		claims:    claims,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *claimService) ReportLostItem(ctx context.Context, reporterID string, req ReportLostItemRequest) (*model.ReportedItem, error) {
	var userID *uuid.UUID
	if parsed, err := uuid.Parse(reporterID); err == nil {
		userID = &parsed
	}

	item := &model.ReportedItem{
		Name:        req.Name,
		Date:        req.Date,
		Location:    req.Location,
		Photo:       req.Photo,
		Description: req.Description,
		Status:      model.ReportedStatusUnclaimed,
		UserID:      userID,
	}
	if err := s.reported.Create(ctx, item); err != nil {
		return nil, err
	}

	s.hub.Notify("reported.created", map[string]interface{}{
		"id":   item.ID.String(),
		"name": item.Name,
	})

	return item, nil
}

func (s *claimService) ListReportedItems(ctx context.Context, query string, p pagination.Params) ([]model.ReportedItem, int64, error) {
	return s.reported.List(ctx, query, p)
}

func (s *claimService) SubmitClaim(ctx context.Context, userID, username, studentID string, req SubmitClaimRequest) (*model.ClaimRequest, error) {
	if req.Photo == "" {
		return nil, apperror.InvalidArgument("Proof photo is required to submit a claim")
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid user id")
	}

	item, err := s.reported.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Reported item not found")
		}
		return nil, err
	}

	if item.Status != model.ReportedStatusUnclaimed {
		return nil, apperror.Conflict("This item has already been claimed")
	}

	hasPending, err := s.claims.HasPendingForUser(ctx, req.ItemID, userID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, apperror.Conflict("You already have a pending claim for this item")
	}

	claim := &model.ClaimRequest{
		ItemID:     item.ID,
		UserID:     uid,
		Username:   username,
		Status:     model.ClaimStatusPending,
		ClaimNotes: req.ClaimNotes,
		Photo:      req.Photo,
		StudentID:  studentID,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	return claim, nil
}

func (s *claimService) ListClaimRequests(ctx context.Context, status string) ([]repository.ClaimDetail, error) {
	return s.claims.ListDetailed(ctx, status)
}

func (s *claimService) ResolveClaim(ctx context.Context, claimID, adminID, decision string) (*model.ClaimRequest, error) {
	if decision != model.ClaimStatusApproved && decision != model.ClaimStatusRejected {
		return nil, apperror.InvalidArgument("Decision must be approved or rejected")
	}

	approverID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid admin id")
	}

	var claim *model.ClaimRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		claim, err = s.claims.GetByID(txCtx, claimID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Claim request not found")
			}
			return err
		}

		// A second resolution must fail loudly, not silently succeed.
		if claim.Status != model.ClaimStatusPending {
			return apperror.Conflict("Claim request has already been " + claim.Status)
		}

		claim.Status = decision
		claim.ApprovalAdminID = &approverID
		if err := s.claims.Update(txCtx, claim); err != nil {
			return err
		}

		if decision != model.ClaimStatusApproved {
			// Rejection touches only the claim; the item stays unclaimed and
			// can still receive other claims.
			return nil
		}

		// Approval is a two-table write: claim and reported item commit
		// together or not at all.
		item, err := s.reported.GetByID(txCtx, claim.ItemID.String())
		if err != nil {
			return err
		}
		item.Status = model.ReportedStatusClaimed
		item.ClaimedByUser = claim.Username
		item.ClaimNotes = claim.ClaimNotes
		return s.reported.Update(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify("claim.resolved", map[string]interface{}{
		"id":     claim.ID.String(),
		"status": claim.Status,
	})

	return claim, nil
}

func (s *claimService) CancelClaim(ctx context.Context, claimID, userID string) error {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Claim request not found")
		}
		return err
	}

	if claim.UserID.String() != userID {
		return apperror.Forbidden("You can only cancel your own claim requests")
	}
	if claim.Status != model.ClaimStatusPending {
		return apperror.Conflict("Only pending claim requests can be cancelled")
	}

	return s.claims.Delete(ctx, claimID)
}
