package schema

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
	"go-commerce-backend/pkg/utils"
)

// Seeder fills an empty schema with a small, relationally consistent data
// set for development and demos. Every step skips itself when data already
// exists, so re-running is harmless.
type Seeder struct {
	db      *gorm.DB
	reviews domain.ReviewRepository
	logs    domain.LogRepository
	log     *zap.Logger
}

func NewSeeder(db *gorm.DB, reviews domain.ReviewRepository, logs domain.LogRepository, l *zap.Logger) *Seeder {
	return &Seeder{db: db, reviews: reviews, logs: logs, log: l}
}

// SeedUsers creates the default admin and customer accounts.
func (s *Seeder) SeedUsers(ctx context.Context) Result {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return fail(fmt.Sprintf("seed users failed: %v", err))
	}
	if count > 0 {
		return ok("users already present, nothing seeded")
	}
	users := []domain.User{
		{Email: "admin@example.com", PasswordHash: utils.HashPassword("admin123"), FirstName: "Ada", LastName: "Admin", Role: domain.RoleAdmin, IsActive: true},
		{Email: "alice@example.com", PasswordHash: utils.HashPassword("customer123"), FirstName: "Alice", LastName: "Anderson", Role: domain.RoleCustomer, IsActive: true},
		{Email: "bob@example.com", PasswordHash: utils.HashPassword("customer123"), FirstName: "Bob", LastName: "Baker", Role: domain.RoleCustomer, IsActive: true},
	}
	if err := s.db.WithContext(ctx).Create(&users).Error; err != nil {
		return fail(fmt.Sprintf("seed users failed: %v", err))
	}
	return ok(fmt.Sprintf("seeded %d users", len(users)))
}

// SeedAll seeds categories, products, orders with items, reviews and logs.
// Users must exist first (run SeedUsers).
func (s *Seeder) SeedAll(ctx context.Context) Result {
	var users []domain.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return fail(fmt.Sprintf("seed failed: %v", err))
	}
	if len(users) == 0 {
		return fail("seed failed: no users found, seed users first")
	}
	var customer domain.User
	for _, u := range users {
		if u.Role == domain.RoleCustomer {
			customer = u
			break
		}
	}
	if customer.ID == 0 {
		customer = users[0]
	}

	categories, err := s.seedCategories(ctx)
	if err != nil {
		return fail(fmt.Sprintf("seed categories failed: %v", err))
	}
	products, err := s.seedProducts(ctx, categories)
	if err != nil {
		return fail(fmt.Sprintf("seed products failed: %v", err))
	}
	orders, err := s.seedOrders(ctx, customer, products)
	if err != nil {
		return fail(fmt.Sprintf("seed orders failed: %v", err))
	}
	if err := s.seedReviews(ctx, customer, products); err != nil {
		s.log.Warn("seed reviews skipped", zap.Error(err))
	}
	if err := s.seedLogs(ctx, customer); err != nil {
		s.log.Warn("seed logs skipped", zap.Error(err))
	}
	return ok(fmt.Sprintf("seeded %d categories, %d products, %d orders",
		len(categories), len(products), len(orders)))
}

func (s *Seeder) seedCategories(ctx context.Context) ([]domain.Category, error) {
	var existing []domain.Category
	if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	categories := []domain.Category{
		{Name: "Electronics", Description: "Devices, gadgets and accessories", SortOrder: 1, IsActive: true},
		{Name: "Clothing", Description: "Apparel for all ages", SortOrder: 2, IsActive: true},
		{Name: "Books", Description: "Physical and digital books", SortOrder: 3, IsActive: true},
		{Name: "Home & Garden", Description: "Furniture and gardening supplies", SortOrder: 4, IsActive: true},
	}
	if err := s.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Seeder) seedProducts(ctx context.Context, categories []domain.Category) ([]domain.Product, error) {
	var existing []domain.Product
	if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	catID := func(i int) *uint {
		if i < len(categories) {
			return &categories[i].ID
		}
		return nil
	}
	products := []domain.Product{
		{Name: "Gaming Laptop Pro", Description: "High-performance laptop, 32GB RAM, 1TB SSD", Price: 1899.99, Stock: 12, CategoryID: catID(0), IsAvailable: true, Images: domain.StringList{"https://cdn.example.com/p/laptop.jpg"}},
		{Name: "Wireless Earbuds", Description: "Noise-cancelling, 24h battery", Price: 129.50, Stock: 80, CategoryID: catID(0), IsAvailable: true},
		{Name: "Denim Jacket", Description: "Classic fit", Price: 59.90, Stock: 35, CategoryID: catID(1), IsAvailable: true},
		{Name: "The Go Programming Language", Description: "Donovan & Kernighan", Price: 39.99, Stock: 20, CategoryID: catID(2), IsAvailable: true},
		{Name: "Garden Tool Set", Description: "8-piece stainless set", Price: 45.00, Stock: 15, CategoryID: catID(3), IsAvailable: true},
	}
	if err := s.db.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Seeder) seedOrders(ctx context.Context, customer domain.User, products []domain.Product) ([]domain.Order, error) {
	var existing []domain.Order
	if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 || len(products) < 2 {
		return existing, nil
	}

	subtotal := products[0].Price + 2*products[1].Price
	order := domain.Order{
		UserID:         customer.ID,
		OrderNumber:    fmt.Sprintf("ORD-%d-0001", customer.ID),
		Status:         domain.OrderStatusConfirmed,
		PaymentStatus:  domain.PaymentStatusCompleted,
		Subtotal:       subtotal,
		TaxAmount:      subtotal * 0.08,
		ShippingAmount: 9.99,
		DiscountAmount: 10.00,
		ShippingAddress: domain.JSONMap{
			"line1": "1 Main St", "city": "Springfield", "zip": "12345",
		},
	}
	order.TotalAmount = order.ComputedTotal()
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}

	items := []domain.OrderItem{
		{
			OrderID: order.ID, ProductID: products[0].ID, Quantity: 1,
			UnitPrice: products[0].Price, TotalPrice: products[0].Price,
			ProductSnapshot: domain.SnapshotOf(&products[0]),
		},
		{
			OrderID: order.ID, ProductID: products[1].ID, Quantity: 2,
			UnitPrice: products[1].Price, TotalPrice: 2 * products[1].Price,
			ProductSnapshot: domain.SnapshotOf(&products[1]),
		},
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return []domain.Order{order}, nil
}

func (s *Seeder) seedReviews(ctx context.Context, customer domain.User, products []domain.Product) error {
	if s.reviews == nil || len(products) == 0 {
		return nil
	}
	existing, err := s.reviews.FindAll(ctx, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.reviews.Create(ctx, &domain.Review{
		UserID:     fmt.Sprint(customer.ID),
		ProductID:  int(products[0].ID),
		Rating:     5,
		Title:      "Excellent",
		Comment:    "Exactly as described, fast shipping.",
		IsVerified: true,
	})
}

func (s *Seeder) seedLogs(ctx context.Context, customer domain.User) error {
	if s.logs == nil {
		return nil
	}
	return s.logs.Create(ctx, &domain.Log{
		Level:    domain.LogLevelInfo,
		Category: domain.LogCategorySystem,
		Message:  "seed data created",
		UserID:   fmt.Sprint(customer.ID),
	})
}
