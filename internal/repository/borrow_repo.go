package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// BorrowRequestDetail is a borrow request joined with requester and item
// fields for admin listings and the activity feed.
type BorrowRequestDetail struct {
	model.BorrowRequest
	Username string `json:"username"`
	Email    string `json:"email"`
	ItemName string `json:"item_name"`
}

// BorrowRepository defines data access for borrow requests.
type BorrowRepository interface {
	Create(ctx context.Context, req *model.BorrowRequest) error
	GetByID(ctx context.Context, id string) (*model.BorrowRequest, error)
	Update(ctx context.Context, req *model.BorrowRequest) error
	ListDetailed(ctx context.Context) ([]BorrowRequestDetail, error)
	ListDetailedForUser(ctx context.Context, userID string) ([]BorrowRequestDetail, error)
	// ListRecentTransitions returns the latest approved/partial/returned
	// requests for the activity feed.
	ListRecentTransitions(ctx context.Context, limit int) ([]BorrowRequestDetail, error)
}

type borrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Create(ctx context.Context, req *model.BorrowRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *borrowRepository) GetByID(ctx context.Context, id string) (*model.BorrowRequest, error) {
	var req model.BorrowRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *borrowRepository) Update(ctx context.Context, req *model.BorrowRequest) error {
	return GetDB(ctx, r.db).Save(req).Error
}

const borrowDetailSelect = "borrow_requests.*, users.username AS username, users.email AS email, items.name AS item_name"

func (r *borrowRepository) detailQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Select(borrowDetailSelect).
		Joins("JOIN users ON users.id = borrow_requests.user_id").
		Joins("JOIN items ON items.id = borrow_requests.item_id")
}

func (r *borrowRepository) ListDetailed(ctx context.Context) ([]BorrowRequestDetail, error) {
	var details []BorrowRequestDetail
	err := r.detailQuery(ctx).
		Order("borrow_requests.request_date DESC").
		Scan(&details).Error
	return details, err
}

func (r *borrowRepository) ListDetailedForUser(ctx context.Context, userID string) ([]BorrowRequestDetail, error) {
	var details []BorrowRequestDetail
	err := r.detailQuery(ctx).
		Where("borrow_requests.user_id = ?", userID).
		Order("borrow_requests.request_date DESC").
		Scan(&details).Error
	return details, err
}

func (r *borrowRepository) ListRecentTransitions(ctx context.Context, limit int) ([]BorrowRequestDetail, error) {
	var details []BorrowRequestDetail
	err := r.detailQuery(ctx).
		Where("borrow_requests.status IN ?", []string{
			model.BorrowStatusApproved, model.BorrowStatusPartial, model.BorrowStatusReturned,
		}).
		Order("borrow_requests.request_date DESC").
		Limit(limit).
		Scan(&details).Error
	return details, err
}
