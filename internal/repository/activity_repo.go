package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ItemCreationDetail is an inventory addition joined with the registering
// admin, for the activity feed.
type ItemCreationDetail struct {
	model.Item
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ReportDetail is a lost-item report joined with its reporter.
type ReportDetail struct {
	model.ReportedItem
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ActivityRepository provides the read-only joins backing the activity feed.
type ActivityRepository interface {
	ListItemCreations(ctx context.Context, since time.Time, limit int) ([]ItemCreationDetail, error)
	ListReports(ctx context.Context, limit int) ([]ReportDetail, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListItemCreations(ctx context.Context, since time.Time, limit int) ([]ItemCreationDetail, error) {
	var details []ItemCreationDetail
	err := GetDB(ctx, r.db).Model(&model.Item{}).
		Select("items.*, users.username AS username, users.role AS role").
		Joins("JOIN users ON users.id = items.created_by").
		Where("items.created_at > ?", since).
		Order("items.created_at DESC").
		Limit(limit).
		Scan(&details).Error
	return details, err
}

func (r *activityRepository) ListReports(ctx context.Context, limit int) ([]ReportDetail, error) {
	var details []ReportDetail
	err := GetDB(ctx, r.db).Model(&model.ReportedItem{}).
		Select("reported_items.*, users.username AS username, users.role AS role").
		Joins("JOIN users ON users.id = reported_items.user_id").
		Order("reported_items.created_at DESC").
		Limit(limit).
		Scan(&details).Error
	return details, err
}
