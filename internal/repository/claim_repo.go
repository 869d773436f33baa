package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ClaimDetail is a claim request joined with fields of the reported item it
// targets, for admin review listings.
type ClaimDetail struct {
	model.ClaimRequest
	ItemName        string `json:"item_name"`
	Location        string `json:"location"`
	ItemDescription string `json:"item_description"`
}

// ClaimRepository defines data access for claim requests.
type ClaimRepository interface {
	Create(ctx context.Context, claim *model.ClaimRequest) error
	GetByID(ctx context.Context, id string) (*model.ClaimRequest, error)
	HasPendingForUser(ctx context.Context, itemID, userID string) (bool, error)
	ListDetailed(ctx context.Context, status string) ([]ClaimDetail, error)
	Update(ctx context.Context, claim *model.ClaimRequest) error
	Delete(ctx context.Context, id string) error
}

type claimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *model.ClaimRequest) error {
	return GetDB(ctx, r.db).Create(claim).Error
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (*model.ClaimRequest, error) {
	var claim model.ClaimRequest
	if err := GetDB(ctx, r.db).First(&claim, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) HasPendingForUser(ctx context.Context, itemID, userID string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ClaimRequest{}).
		Where("item_id = ? AND user_id = ? AND status = ?", itemID, userID, model.ClaimStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *claimRepository) ListDetailed(ctx context.Context, status string) ([]ClaimDetail, error) {
	db := GetDB(ctx, r.db).Model(&model.ClaimRequest{}).
		Select("claim_requests.*, reported_items.name AS item_name, reported_items.location AS location, reported_items.description AS item_description").
		Joins("JOIN reported_items ON reported_items.id = claim_requests.item_id")
	if status != "" {
		db = db.Where("claim_requests.status = ?", status)
	}

	var details []ClaimDetail
	err := db.Order("claim_requests.created_at DESC").Scan(&details).Error
	return details, err
}

func (r *claimRepository) Update(ctx context.Context, claim *model.ClaimRequest) error {
	return GetDB(ctx, r.db).Save(claim).Error
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ClaimRequest{}).Error
}
