package repository

import (
	"context"

	"shoptrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the order half of the data gateway. Every operation is
// scoped to the owning account; update and delete target by primary key.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Order, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(order).Error)
	})
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ?", order.OwnerID).
			Save(order).Error)
	})
}

func (r *orderRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return withRetry(ctx, func() error {
		res := GetDB(ctx, r.db).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Delete(&model.Order{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *orderRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			First(&order, "id = ? AND owner_id = ?", id, ownerID).Error)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).
			Where("owner_id = ?", ownerID).
			Order("date DESC, created_at DESC").
			Find(&orders).Error)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
