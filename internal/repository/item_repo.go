package repository

import (
	"context"
	"strings"

	"shoptrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository is the inventory half of the data gateway, scoped by owner
// like the order side.
type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.InventoryItem, error)
	FindBySKU(ctx context.Context, ownerID uuid.UUID, sku string) (*model.InventoryItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.InventoryItem, error)
	AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(item).Error)
	})
}

func (r *itemRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ?", item.OwnerID).
			Save(item).Error)
	})
}

func (r *itemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Delete(&model.InventoryItem{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *itemRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			First(&item, "id = ? AND owner_id = ?", id, ownerID).Error)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySKU matches case-insensitively on the trimmed SKU.
func (r *itemRepository) FindBySKU(ctx context.Context, ownerID uuid.UUID, sku string) (*model.InventoryItem, error) {
	normalized := strings.ToLower(strings.TrimSpace(sku))
	var item model.InventoryItem
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ? AND LOWER(TRIM(sku)) = ?", ownerID, normalized).
			First(&item).Error)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ?", ownerID).
			Order("created_at DESC").
			Find(&items).Error)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AdjustStock applies delta atomically in SQL; a no-op for unknown ids so a
// dangling order reference never fails the settlement.
func (r *itemRepository) AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Model(&model.InventoryItem{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Update("stock_level", gorm.Expr("stock_level + ?", delta)).Error)
	})
}
