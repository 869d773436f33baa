package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type CreateItemRequest struct {
	Name        string
	Quantity    int
	Date        time.Time
	Location    string
	Photo       string
	Description string
}

type UpdateItemRequest struct {
	Name        string
	Quantity    int
	Date        time.Time
	Location    string
	Photo       string // empty keeps the current photo
	Description string // empty keeps the current description
}

// ItemWithAvailability augments an item with the derived borrow accounting.
// Available is never stored: it is quantity minus the held-out total.
type ItemWithAvailability struct {
	model.Item
	TotalBorrowed int `json:"total_borrowed"`
	Available     int `json:"available"`
}

// ItemService defines inventory management and availability reads.
type ItemService interface {
	ListItems(ctx context.Context, sortKey string) ([]ItemWithAvailability, error)
	SearchItems(ctx context.Context, query, sortKey string) ([]ItemWithAvailability, error)
	GetItem(ctx context.Context, id string) (*ItemWithAvailability, error)
	CreateItem(ctx context.Context, adminID string, req CreateItemRequest) (*model.Item, error)
	ReportFoundItem(ctx context.Context, reporterID string, req CreateItemRequest) (*model.Item, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) error
	UpdateItemStatus(ctx context.Context, id, status string) error
	DeleteItem(ctx context.Context, id string) error
}

type itemService struct {
	items repository.ItemRepository
	hub   *ws.Hub
}

func NewItemService(items repository.ItemRepository, hub *ws.Hub) ItemService {
	return &itemService{items: items, hub: hub}
}

func (s *itemService) withAvailability(ctx context.Context, items []model.Item) ([]ItemWithAvailability, error) {
	totals, err := s.items.BorrowedTotals(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ItemWithAvailability, 0, len(items))
	for _, item := range items {
		borrowed := totals[item.ID]
		result = append(result, ItemWithAvailability{
			Item:          item,
			TotalBorrowed: borrowed,
			Available:     item.Quantity - borrowed,
		})
	}
	return result, nil
}

func (s *itemService) ListItems(ctx context.Context, sortKey string) ([]ItemWithAvailability, error) {
	items, err := s.items.List(ctx, sortKey)
	if err != nil {
		return nil, err
	}
	return s.withAvailability(ctx, items)
}

func (s *itemService) SearchItems(ctx context.Context, query, sortKey string) ([]ItemWithAvailability, error) {
	items, err := s.items.Search(ctx, query, sortKey)
	if err != nil {
		return nil, err
	}
	return s.withAvailability(ctx, items)
}

func (s *itemService) GetItem(ctx context.Context, id string) (*ItemWithAvailability, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Item not found")
		}
		return nil, err
	}

	borrowed, err := s.items.BorrowedTotal(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &ItemWithAvailability{
		Item:          *item,
		TotalBorrowed: borrowed,
		Available:     item.Quantity - borrowed,
	}, nil
}

func (s *itemService) insertItem(ctx context.Context, userID string, req CreateItemRequest, event string) (*model.Item, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	var createdBy *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		createdBy = &parsed
	}

	item := &model.Item{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Date:        req.Date,
		Location:    req.Location,
		Photo:       req.Photo,
		Status:      model.ItemStatusAvailable,
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.hub.Notify(event, map[string]interface{}{
		"id":       item.ID.String(),
		"name":     item.Name,
		"quantity": item.Quantity,
	})

	return item, nil
}

func (s *itemService) CreateItem(ctx context.Context, adminID string, req CreateItemRequest) (*model.Item, error) {
	return s.insertItem(ctx, adminID, req, "item.created")
}

// ReportFoundItem registers an item a student found into the lending
// inventory. Same row as an admin create; only the role path differs.
func (s *itemService) ReportFoundItem(ctx context.Context, reporterID string, req CreateItemRequest) (*model.Item, error) {
	return s.insertItem(ctx, reporterID, req, "item.reported")
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) error {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Item not found")
		}
		return err
	}
	if req.Quantity <= 0 {
		return apperror.InvalidArgument("Quantity must be a positive integer")
	}

	// Optional fields are applied only when provided, as a column map rather
	// than string-assembled SQL.
	fields := map[string]interface{}{
		"name":     req.Name,
		"date":     req.Date,
		"location": req.Location,
		"quantity": req.Quantity,
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Photo != "" {
		fields["photo"] = req.Photo
	}

	return s.items.UpdateFields(ctx, id, fields)
}

func (s *itemService) UpdateItemStatus(ctx context.Context, id, status string) error {
	if status == "" {
		return apperror.InvalidArgument("Status is required")
	}
	if _, err := s.items.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Item not found")
		}
		return err
	}
	return s.items.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Item not found")
		}
		return err
	}

	hasRequests, err := s.items.HasBorrowRequests(ctx, item.ID)
	if err != nil {
		return err
	}
	if hasRequests {
		return apperror.Conflict("Cannot delete item with borrow requests. Please handle all borrow requests first.")
	}

	return s.items.Delete(ctx, id)
}
