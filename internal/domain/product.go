package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int        `gorm:"not null;default:0" json:"stock"`
	Images      StringList `gorm:"type:jsonb" json:"images"`
	CategoryID  *uint      `json:"categoryId"`
	IsAvailable bool       `gorm:"default:true" json:"isAvailable"`
	Metadata    JSONMap    `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id uint, changes map[string]any) (*Product, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
