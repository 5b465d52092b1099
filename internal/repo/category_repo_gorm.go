package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

type CategoryRepo struct {
	db  *gorm.DB
	res *Resolver
}

func NewCategoryRepo(db *gorm.DB, res *Resolver) *CategoryRepo {
	return &CategoryRepo{db: db, res: res}
}

var _ domain.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	return Resolve(r.res, categoryLadder, func(rels RelationSet) (*domain.Category, error) {
		var c domain.Category
		err := rels.apply(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &c, nil
	})
}

func (r *CategoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	return Resolve(r.res, categoryLadder, func(rels RelationSet) ([]domain.Category, error) {
		var cs []domain.Category
		err := rels.apply(r.db.WithContext(ctx)).
			Order("sort_order asc").Order("name asc").
			Find(&cs).Error
		return cs, err
	})
}

func (r *CategoryRepo) Update(ctx context.Context, id uint, changes map[string]any) (*domain.Category, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
