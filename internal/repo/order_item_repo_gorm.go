package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

type OrderItemRepo struct {
	db  *gorm.DB
	res *Resolver
}

func NewOrderItemRepo(db *gorm.DB, res *Resolver) *OrderItemRepo {
	return &OrderItemRepo{db: db, res: res}
}

var _ domain.OrderItemRepository = (*OrderItemRepo)(nil)

func (r *OrderItemRepo) Create(ctx context.Context, it *domain.OrderItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *OrderItemRepo) FindByID(ctx context.Context, id uint) (*domain.OrderItem, error) {
	return Resolve(r.res, orderItemLadder, func(rels RelationSet) (*domain.OrderItem, error) {
		var it domain.OrderItem
		err := rels.apply(r.db.WithContext(ctx)).First(&it, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &it, nil
	})
}

func (r *OrderItemRepo) FindAll(ctx context.Context) ([]domain.OrderItem, error) {
	return Resolve(r.res, orderItemLadder, func(rels RelationSet) ([]domain.OrderItem, error) {
		var items []domain.OrderItem
		err := rels.apply(r.db.WithContext(ctx)).Find(&items).Error
		return items, err
	})
}

func (r *OrderItemRepo) FindByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	// Only the product side is expanded here; the owning order is implied.
	ladder := Ladder{{"Product"}, nil}
	return Resolve(r.res, ladder, func(rels RelationSet) ([]domain.OrderItem, error) {
		var items []domain.OrderItem
		err := rels.apply(r.db.WithContext(ctx)).
			Where("order_id = ?", orderID).
			Find(&items).Error
		return items, err
	})
}

func (r *OrderItemRepo) Update(ctx context.Context, id uint, changes map[string]any) (*domain.OrderItem, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.OrderItem{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *OrderItemRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.OrderItem{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
