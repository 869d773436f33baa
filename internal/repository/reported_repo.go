package repository

import (
	"context"

	"backend/internal/model"
	"backend/pkg/pagination"

	"gorm.io/gorm"
)

// ReportedItemRepository defines data access for lost-item reports.
type ReportedItemRepository interface {
	Create(ctx context.Context, item *model.ReportedItem) error
	GetByID(ctx context.Context, id string) (*model.ReportedItem, error)
	List(ctx context.Context, query string, p pagination.Params) ([]model.ReportedItem, int64, error)
	Update(ctx context.Context, item *model.ReportedItem) error
}

type reportedItemRepository struct {
	db *gorm.DB
}

func NewReportedItemRepository(db *gorm.DB) ReportedItemRepository {
	return &reportedItemRepository{db: db}
}

func (r *reportedItemRepository) Create(ctx context.Context, item *model.ReportedItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *reportedItemRepository) GetByID(ctx context.Context, id string) (*model.ReportedItem, error) {
	var item model.ReportedItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *reportedItemRepository) List(ctx context.Context, query string, p pagination.Params) ([]model.ReportedItem, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.ReportedItem{})
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.ReportedItem
	err := db.Order("created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *reportedItemRepository) Update(ctx context.Context, item *model.ReportedItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}
