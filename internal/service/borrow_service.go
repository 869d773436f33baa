package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type CreateBorrowRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
	Purpose  string `json:"purpose"`
}

type UpdateBorrowStatusRequest struct {
	Status           string     `json:"status" binding:"required"`
	ReturnDate       *time.Time `json:"return_date"`
	ReturnedQuantity *int       `json:"returned_quantity"`
}

// BorrowService owns the borrow request state machine:
// pending -> approved | rejected, approved/partial -> returned.
// Approval and return re-derive availability inside one transaction.
type BorrowService interface {
	CreateBorrowRequest(ctx context.Context, itemID, userID, studentID string, req CreateBorrowRequest) (*model.BorrowRequest, error)
	ListBorrowRequests(ctx context.Context) ([]repository.BorrowRequestDetail, error)
	ListUserBorrowRequests(ctx context.Context, userID string) ([]repository.BorrowRequestDetail, error)
	UpdateBorrowRequestStatus(ctx context.Context, requestID string, req UpdateBorrowStatusRequest) (*model.BorrowRequest, error)
}

type borrowService struct {
	borrows       repository.BorrowRepository
	items         repository.ItemRepository
	notifications repository.NotificationRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewBorrowService(
	borrows repository.BorrowRepository,
	items repository.ItemRepository,
	notifications repository.NotificationRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) BorrowService {
	return &borrowService{
		borrows:       borrows,
		items:         items,
		notifications: notifications,
		txManager:     txManager,
		hub:           hub,
	}
}

func (s *borrowService) CreateBorrowRequest(ctx context.Context, itemID, userID, studentID string, req CreateBorrowRequest) (*model.BorrowRequest, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid user id")
	}
	if req.Quantity <= 0 {
		return nil, apperror.InvalidArgument("Quantity must be a positive integer")
	}

	var request *model.BorrowRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetByID(txCtx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Item not found")
			}
			return err
		}

		if item.Status == model.ItemStatusMaintenance || item.Status == model.ItemStatusDamaged {
			return apperror.Forbidden(fmt.Sprintf("Item is under %s and cannot be borrowed", item.Status))
		}
		if item.Quantity <= 0 {
			return apperror.Unavailable("Item is not available for borrowing (quantity is zero)")
		}

		// Check against the derived available amount, not the raw registered
		// quantity, so already-approved requests count.
		borrowed, err := s.items.BorrowedTotal(txCtx, item.ID)
		if err != nil {
			return err
		}
		available := item.Quantity - borrowed
		if req.Quantity > available {
			return apperror.InsufficientQuantity(
				fmt.Sprintf("Cannot borrow %d items. Only %d items are available.", req.Quantity, available))
		}

		request = &model.BorrowRequest{
			ItemID:    item.ID,
			UserID:    uid,
			StudentID: studentID,
			Status:    model.BorrowStatusPending,
			Notes:     req.Notes,
			Quantity:  req.Quantity,
			Purpose:   req.Purpose,
		}
		return s.borrows.Create(txCtx, request)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify("borrow.created", map[string]interface{}{
		"id":      request.ID.String(),
		"item_id": request.ItemID.String(),
	})

	return request, nil
}

func (s *borrowService) ListBorrowRequests(ctx context.Context) ([]repository.BorrowRequestDetail, error) {
	return s.borrows.ListDetailed(ctx)
}

func (s *borrowService) ListUserBorrowRequests(ctx context.Context, userID string) ([]repository.BorrowRequestDetail, error) {
	return s.borrows.ListDetailedForUser(ctx, userID)
}

func (s *borrowService) UpdateBorrowRequestStatus(ctx context.Context, requestID string, req UpdateBorrowStatusRequest) (*model.BorrowRequest, error) {
	var request *model.BorrowRequest

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.borrows.GetByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Borrow request not found")
			}
			return err
		}

		switch req.Status {
		case model.BorrowStatusApproved:
			return s.approve(txCtx, request)
		case model.BorrowStatusRejected:
			return s.reject(txCtx, request)
		case model.BorrowStatusReturned:
			return s.processReturn(txCtx, request, req)
		default:
			return apperror.InvalidArgument("Status must be approved, rejected or returned")
		}
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify("borrow.updated", map[string]interface{}{
		"id":     request.ID.String(),
		"status": request.Status,
	})

	return request, nil
}

func (s *borrowService) approve(ctx context.Context, request *model.BorrowRequest) error {
	if request.Status != model.BorrowStatusPending {
		return apperror.Conflict(fmt.Sprintf("Borrow request is already %s", request.Status))
	}

	// The request was only pre-checked at creation time; availability may
	// have shrunk since. Re-derive before committing the approval so the
	// invariant available >= 0 holds.
	item, err := s.items.GetByID(ctx, request.ItemID.String())
	if err != nil {
		return err
	}
	borrowed, err := s.items.BorrowedTotal(ctx, request.ItemID)
	if err != nil {
		return err
	}
	if request.Quantity > item.Quantity-borrowed {
		return apperror.InsufficientQuantity(
			fmt.Sprintf("Cannot approve %d items. Only %d items are available.", request.Quantity, item.Quantity-borrowed))
	}

	request.Status = model.BorrowStatusApproved
	return s.borrows.Update(ctx, request)
}

func (s *borrowService) reject(ctx context.Context, request *model.BorrowRequest) error {
	if request.Status != model.BorrowStatusPending {
		return apperror.Conflict(fmt.Sprintf("Borrow request is already %s", request.Status))
	}
	request.Status = model.BorrowStatusRejected
	return s.borrows.Update(ctx, request)
}

func (s *borrowService) processReturn(ctx context.Context, request *model.BorrowRequest, req UpdateBorrowStatusRequest) error {
	if request.Status != model.BorrowStatusApproved && request.Status != model.BorrowStatusPartial {
		return apperror.Conflict("Only approved or partially returned requests can be returned")
	}

	if req.ReturnedQuantity == nil || *req.ReturnedQuantity <= 0 {
		return apperror.InvalidArgument("Returned quantity must be a positive integer")
	}
	if *req.ReturnedQuantity > request.Quantity {
		return apperror.InvalidArgument("Returned quantity cannot exceed borrowed quantity")
	}

	// A full return frees the whole borrowed quantity. A partial return
	// frees nothing: the row stays counted against availability.
	if *req.ReturnedQuantity < request.Quantity {
		request.Status = model.BorrowStatusPartial
	} else {
		request.Status = model.BorrowStatusReturned
	}

	returnDate := time.Now()
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}
	request.ReturnDate = &returnDate

	if err := s.borrows.Update(ctx, request); err != nil {
		return err
	}

	notification := &model.Notification{
		UserID:  request.UserID,
		Message: fmt.Sprintf("Your borrowed item (ID %s) has been returned.", request.ItemID),
	}
	return s.notifications.Create(ctx, notification)
}
