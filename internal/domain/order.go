package domain

import (
	"context"
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// MoneyEpsilon is the tolerance used when checking monetary identities.
const MoneyEpsilon = 0.005

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"userId"`
	OrderNumber     string        `gorm:"size:64;uniqueIndex;not null" json:"orderNumber"`
	Status          OrderStatus   `gorm:"type:order_status;default:pending" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:payment_status;default:pending" json:"paymentStatus"`
	Subtotal        float64       `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount       float64       `gorm:"type:decimal(10,2);default:0" json:"taxAmount"`
	ShippingAmount  float64       `gorm:"type:decimal(10,2);default:0" json:"shippingAmount"`
	DiscountAmount  float64       `gorm:"type:decimal(10,2);default:0" json:"discountAmount"`
	TotalAmount     float64       `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	ShippingAddress JSONMap       `gorm:"type:jsonb" json:"shippingAddress,omitempty"`
	BillingAddress  JSONMap       `gorm:"type:jsonb" json:"billingAddress,omitempty"`
	PaymentMetadata JSONMap       `gorm:"type:jsonb" json:"paymentMetadata,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	User  *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// ComputedTotal derives the total from the order's components.
func (o *Order) ComputedTotal() float64 {
	return o.Subtotal + o.TaxAmount + o.ShippingAmount - o.DiscountAmount
}

// TotalConsistent reports whether TotalAmount matches its components within
// rounding tolerance.
func (o *Order) TotalConsistent() bool {
	return math.Abs(o.TotalAmount-o.ComputedTotal()) < MoneyEpsilon
}

type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"not null;index" json:"orderId"`
	ProductID       uint      `gorm:"not null;index" json:"productId"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice      float64   `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	ProductSnapshot JSONMap   `gorm:"type:jsonb" json:"productSnapshot,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Order   *Order   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

// SnapshotOf captures the product attributes an order item must keep even
// after the product row changes.
func SnapshotOf(p *Product) JSONMap {
	if p == nil {
		return nil
	}
	snap := JSONMap{
		"name":  p.Name,
		"price": p.Price,
	}
	if len(p.Images) > 0 {
		snap["image"] = p.Images[0]
	}
	if p.Description != "" {
		snap["description"] = p.Description
	}
	return snap
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUser(ctx context.Context, userID uint) ([]Order, error)
	Update(ctx context.Context, id uint, changes map[string]any) (*Order, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type OrderItemRepository interface {
	Create(ctx context.Context, it *OrderItem) error
	FindByID(ctx context.Context, id uint) (*OrderItem, error)
	FindAll(ctx context.Context) ([]OrderItem, error)
	FindByOrder(ctx context.Context, orderID uint) ([]OrderItem, error)
	Update(ctx context.Context, id uint, changes map[string]any) (*OrderItem, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
