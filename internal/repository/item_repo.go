package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item sort strategies. A fixed whitelist instead of caller-supplied SQL
// fragments; unknown keys fall back to newest-first.
var itemSortColumns = map[string]string{
	"dateAdded": "created_at DESC",
	"name":      "name ASC",
	"status":    "status ASC",
}

// ItemOrder resolves a sort key from the API to an ORDER BY expression.
func ItemOrder(sortKey string) string {
	if order, ok := itemSortColumns[sortKey]; ok {
		return order
	}
	return itemSortColumns["dateAdded"]
}

// ItemRepository defines data access for lendable inventory.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, sortKey string) ([]model.Item, error)
	Search(ctx context.Context, query, sortKey string) ([]model.Item, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// BorrowedTotals returns the summed quantity of approved/partial borrow
	// requests per item, in one grouped query.
	BorrowedTotals(ctx context.Context) (map[uuid.UUID]int, error)
	// BorrowedTotal returns the held-out quantity for a single item.
	BorrowedTotal(ctx context.Context, itemID uuid.UUID) (int, error)
	HasBorrowRequests(ctx context.Context, itemID uuid.UUID) (bool, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, sortKey string) ([]model.Item, error) {
	var items []model.Item
	err := GetDB(ctx, r.db).Order(ItemOrder(sortKey)).Find(&items).Error
	return items, err
}

func (r *itemRepository) Search(ctx context.Context, query, sortKey string) ([]model.Item, error) {
	var items []model.Item
	pattern := "%" + query + "%"
	err := GetDB(ctx, r.db).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)", pattern, pattern).
		Order(ItemOrder(sortKey)).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return GetDB(ctx, r.db).Model(&model.Item{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Item{}).Error
}

func (r *itemRepository) BorrowedTotals(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ItemID uuid.UUID
		Total  int
	}
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Select("item_id, COALESCE(SUM(quantity), 0) AS total").
		Where("status IN ?", []string{model.BorrowStatusApproved, model.BorrowStatusPartial}).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		totals[row.ItemID] = row.Total
	}
	return totals, nil
}

func (r *itemRepository) BorrowedTotal(ctx context.Context, itemID uuid.UUID) (int, error) {
	var total int
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("item_id = ? AND status IN ?", itemID, []string{model.BorrowStatusApproved, model.BorrowStatusPartial}).
		Scan(&total).Error
	return total, err
}

func (r *itemRepository) HasBorrowRequests(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("item_id = ?", itemID).
		Count(&count).Error
	return count > 0, err
}
