package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

type ProductRepo struct {
	db  *gorm.DB
	res *Resolver
}

func NewProductRepo(db *gorm.DB, res *Resolver) *ProductRepo {
	return &ProductRepo{db: db, res: res}
}

var _ domain.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	return Resolve(r.res, productLadder, func(rels RelationSet) (*domain.Product, error) {
		var p domain.Product
		err := rels.apply(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
}

func (r *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) Update(ctx context.Context, id uint, changes map[string]any) (*domain.Product, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
