package domain

import (
	"context"
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"default:0" json:"sortOrder"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	Metadata    JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"products,omitempty"`
}

func (Category) TableName() string { return "categories" }

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uint, changes map[string]any) (*Category, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
