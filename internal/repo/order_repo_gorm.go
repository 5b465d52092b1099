package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

type OrderRepo struct {
	db  *gorm.DB
	res *Resolver
}

func NewOrderRepo(db *gorm.DB, res *Resolver) *OrderRepo {
	return &OrderRepo{db: db, res: res}
}

var _ domain.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return Resolve(r.res, orderLadder, func(rels RelationSet) (*domain.Order, error) {
		var o domain.Order
		err := rels.apply(r.db.WithContext(ctx)).First(&o, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &o, nil
	})
}

func (r *OrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return Resolve(r.res, orderLadder, func(rels RelationSet) ([]domain.Order, error) {
		var os []domain.Order
		err := rels.apply(r.db.WithContext(ctx)).
			Order("created_at desc").
			Find(&os).Error
		return os, err
	})
}

func (r *OrderRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return Resolve(r.res, orderLadder, func(rels RelationSet) ([]domain.Order, error) {
		var os []domain.Order
		err := rels.apply(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&os).Error
		return os, err
	})
}

func (r *OrderRepo) Update(ctx context.Context, id uint, changes map[string]any) (*domain.Order, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *OrderRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
