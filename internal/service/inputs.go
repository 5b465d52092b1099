package service

import (
	"time"

	"go-commerce-backend/internal/domain"
)

// Typed partial-entity inputs for the facade. Transport binds loosely-typed
// bodies into these; the facade validates them before anything reaches a
// store. Update inputs use pointer fields so "absent" and "zero" stay
// distinct.

type CreateUserInput struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	FirstName string          `json:"firstName" validate:"max=64"`
	LastName  string          `json:"lastName" validate:"max=64"`
	Role      domain.UserRole `json:"role" validate:"omitempty,oneof=admin customer"`
}

type UpdateUserInput struct {
	Email     *string          `json:"email" validate:"omitempty,email"`
	Password  *string          `json:"password" validate:"omitempty,min=6"`
	FirstName *string          `json:"firstName" validate:"omitempty,max=64"`
	LastName  *string          `json:"lastName" validate:"omitempty,max=64"`
	Role      *domain.UserRole `json:"role" validate:"omitempty,oneof=admin customer"`
	IsActive  *bool            `json:"isActive"`
}

func (in UpdateUserInput) changes(hash func(string) string) map[string]any {
	m := map[string]any{}
	if in.Email != nil {
		m["email"] = *in.Email
	}
	if in.Password != nil {
		m["password_hash"] = hash(*in.Password)
	}
	if in.FirstName != nil {
		m["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		m["last_name"] = *in.LastName
	}
	if in.Role != nil {
		m["role"] = *in.Role
	}
	if in.IsActive != nil {
		m["is_active"] = *in.IsActive
	}
	return m
}

type CreateCategoryInput struct {
	Name        string         `json:"name" validate:"required,max=128"`
	Description string         `json:"description"`
	SortOrder   int            `json:"sortOrder"`
	IsActive    *bool          `json:"isActive"`
	Metadata    domain.JSONMap `json:"metadata"`
}

type UpdateCategoryInput struct {
	Name        *string        `json:"name" validate:"omitempty,max=128"`
	Description *string        `json:"description"`
	SortOrder   *int           `json:"sortOrder"`
	IsActive    *bool          `json:"isActive"`
	Metadata    domain.JSONMap `json:"metadata"`
}

func (in UpdateCategoryInput) changes() map[string]any {
	m := map[string]any{}
	if in.Name != nil {
		m["name"] = *in.Name
	}
	if in.Description != nil {
		m["description"] = *in.Description
	}
	if in.SortOrder != nil {
		m["sort_order"] = *in.SortOrder
	}
	if in.IsActive != nil {
		m["is_active"] = *in.IsActive
	}
	if in.Metadata != nil {
		m["metadata"] = in.Metadata
	}
	return m
}

type CreateProductInput struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description"`
	Price       float64           `json:"price" validate:"gte=0"`
	Stock       int               `json:"stock" validate:"gte=0"`
	Images      domain.StringList `json:"images"`
	CategoryID  *uint             `json:"categoryId"`
	IsAvailable *bool             `json:"isAvailable"`
	Metadata    domain.JSONMap    `json:"metadata"`
}

type UpdateProductInput struct {
	Name        *string           `json:"name" validate:"omitempty,max=255"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
	Stock       *int              `json:"stock" validate:"omitempty,gte=0"`
	Images      domain.StringList `json:"images"`
	CategoryID  *uint             `json:"categoryId"`
	IsAvailable *bool             `json:"isAvailable"`
	Metadata    domain.JSONMap    `json:"metadata"`
}

func (in UpdateProductInput) changes() map[string]any {
	m := map[string]any{}
	if in.Name != nil {
		m["name"] = *in.Name
	}
	if in.Description != nil {
		m["description"] = *in.Description
	}
	if in.Price != nil {
		m["price"] = *in.Price
	}
	if in.Stock != nil {
		m["stock"] = *in.Stock
	}
	if in.Images != nil {
		m["images"] = in.Images
	}
	if in.CategoryID != nil {
		m["category_id"] = *in.CategoryID
	}
	if in.IsAvailable != nil {
		m["is_available"] = *in.IsAvailable
	}
	if in.Metadata != nil {
		m["metadata"] = in.Metadata
	}
	return m
}

type OrderItemInput struct {
	ProductID  uint    `json:"productId" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unitPrice" validate:"gte=0"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

type CreateOrderInput struct {
	UserID          uint                 `json:"userId" validate:"required,gt=0"`
	OrderNumber     string               `json:"orderNumber" validate:"required,max=64"`
	Status          domain.OrderStatus   `json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending processing completed failed refunded"`
	Subtotal        float64              `json:"subtotal" validate:"gte=0"`
	TaxAmount       float64              `json:"taxAmount" validate:"gte=0"`
	ShippingAmount  float64              `json:"shippingAmount" validate:"gte=0"`
	DiscountAmount  float64              `json:"discountAmount" validate:"gte=0"`
	TotalAmount     float64              `json:"totalAmount" validate:"gte=0"`
	ShippingAddress domain.JSONMap       `json:"shippingAddress"`
	BillingAddress  domain.JSONMap       `json:"billingAddress"`
	PaymentMetadata domain.JSONMap       `json:"paymentMetadata"`
	Items           []OrderItemInput     `json:"items" validate:"dive"`
}

type UpdateOrderInput struct {
	Status          *domain.OrderStatus   `json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	PaymentStatus   *domain.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending processing completed failed refunded"`
	ShippingAddress domain.JSONMap        `json:"shippingAddress"`
	BillingAddress  domain.JSONMap        `json:"billingAddress"`
	PaymentMetadata domain.JSONMap        `json:"paymentMetadata"`
}

func (in UpdateOrderInput) changes() map[string]any {
	m := map[string]any{}
	if in.Status != nil {
		m["status"] = *in.Status
	}
	if in.PaymentStatus != nil {
		m["payment_status"] = *in.PaymentStatus
	}
	if in.ShippingAddress != nil {
		m["shipping_address"] = in.ShippingAddress
	}
	if in.BillingAddress != nil {
		m["billing_address"] = in.BillingAddress
	}
	if in.PaymentMetadata != nil {
		m["payment_metadata"] = in.PaymentMetadata
	}
	return m
}

type CreateOrderItemInput struct {
	OrderID    uint    `json:"orderId" validate:"required,gt=0"`
	ProductID  uint    `json:"productId" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unitPrice" validate:"gte=0"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

type UpdateOrderItemInput struct {
	Quantity   *int     `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice  *float64 `json:"unitPrice" validate:"omitempty,gte=0"`
	TotalPrice *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
}

func (in UpdateOrderItemInput) changes() map[string]any {
	m := map[string]any{}
	if in.Quantity != nil {
		m["quantity"] = *in.Quantity
	}
	if in.UnitPrice != nil {
		m["unit_price"] = *in.UnitPrice
	}
	if in.TotalPrice != nil {
		m["total_price"] = *in.TotalPrice
	}
	return m
}

type CreateReviewInput struct {
	UserID     string         `json:"userId" validate:"required"`
	ProductID  int            `json:"productId" validate:"required,gt=0"`
	Rating     int            `json:"rating" validate:"required,min=1,max=5"`
	Title      string         `json:"title" validate:"required,max=255"`
	Comment    string         `json:"comment" validate:"required"`
	IsVerified *bool          `json:"isVerified"`
	Images     []string       `json:"images"`
	Metadata   map[string]any `json:"metadata"`
}

type UpdateReviewInput struct {
	Rating   *int           `json:"rating" validate:"omitempty,min=1,max=5"`
	Title    *string        `json:"title" validate:"omitempty,max=255"`
	Comment  *string        `json:"comment"`
	Images   []string       `json:"images"`
	Metadata map[string]any `json:"metadata"`
}

func (in UpdateReviewInput) changes() map[string]any {
	m := map[string]any{}
	if in.Rating != nil {
		m["rating"] = *in.Rating
	}
	if in.Title != nil {
		m["title"] = *in.Title
	}
	if in.Comment != nil {
		m["comment"] = *in.Comment
	}
	if in.Images != nil {
		m["images"] = in.Images
	}
	if in.Metadata != nil {
		m["metadata"] = in.Metadata
	}
	return m
}

type CreateLogInput struct {
	Level        domain.LogLevel    `json:"level" validate:"required,oneof=error warn info debug"`
	Category     domain.LogCategory `json:"category" validate:"required,oneof=user_action system api_request database payment security error"`
	Message      string             `json:"message" validate:"required"`
	UserID       string             `json:"userId"`
	SessionID    string             `json:"sessionId"`
	IPAddress    string             `json:"ipAddress"`
	UserAgent    string             `json:"userAgent"`
	Endpoint     string             `json:"endpoint"`
	Method       string             `json:"method"`
	StatusCode   int                `json:"statusCode"`
	ResponseTime int64              `json:"responseTime"`
	RequestData  map[string]any     `json:"requestData"`
	ResponseData map[string]any     `json:"responseData"`
	ErrorDetails map[string]any     `json:"errorDetails"`
	Metadata     map[string]any     `json:"metadata"`
}

type UpdateLogInput struct {
	Level        *domain.LogLevel    `json:"level" validate:"omitempty,oneof=error warn info debug"`
	Category     *domain.LogCategory `json:"category" validate:"omitempty,oneof=user_action system api_request database payment security error"`
	Message      *string             `json:"message"`
	ErrorDetails map[string]any      `json:"errorDetails"`
	Metadata     map[string]any      `json:"metadata"`
}

func (in UpdateLogInput) changes() map[string]any {
	m := map[string]any{}
	if in.Level != nil {
		m["level"] = *in.Level
	}
	if in.Category != nil {
		m["category"] = *in.Category
	}
	if in.Message != nil {
		m["message"] = *in.Message
	}
	if in.ErrorDetails != nil {
		m["errorDetails"] = in.ErrorDetails
	}
	if in.Metadata != nil {
		m["metadata"] = in.Metadata
	}
	return m
}

// LogFilter narrows log listings at the facade boundary.
type LogFilter struct {
	Level    domain.LogLevel    `form:"level" validate:"omitempty,oneof=error warn info debug"`
	Category domain.LogCategory `form:"category" validate:"omitempty,oneof=user_action system api_request database payment security error"`
	UserID   string             `form:"userId"`
	From     time.Time          `form:"from" time_format:"2006-01-02"`
	To       time.Time          `form:"to" time_format:"2006-01-02"`
	Limit    int64              `form:"limit" validate:"omitempty,gte=1,lte=1000"`
}
