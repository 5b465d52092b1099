package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-commerce-backend/internal/domain"
	"go-commerce-backend/internal/repo"
	"go-commerce-backend/internal/schema"
	"go-commerce-backend/pkg/utils"
)

// DataService is the single entry point callers use for data access.
// It validates inputs, delegates to the repositories, and classifies
// every store error into the domain taxonomy on the way out.
type DataService struct {
	users      domain.UserRepository
	categories domain.CategoryRepository
	products   domain.ProductRepository
	orders     domain.OrderRepository
	orderItems domain.OrderItemRepository
	reviews    domain.ReviewRepository
	logs       domain.LogRepository

	lifecycle *schema.Manager
	seeder    *schema.Seeder
	classify  *repo.Classifier
	validate  *validator.Validate
	log       *zap.Logger
}

type Deps struct {
	Users      domain.UserRepository
	Categories domain.CategoryRepository
	Products   domain.ProductRepository
	Orders     domain.OrderRepository
	OrderItems domain.OrderItemRepository
	Reviews    domain.ReviewRepository
	Logs       domain.LogRepository
	Lifecycle  *schema.Manager
	Seeder     *schema.Seeder
	Classifier *repo.Classifier
	Logger     *zap.Logger
}

func New(d Deps) *DataService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Classifier == nil {
		d.Classifier = repo.NewClassifier(d.Logger)
	}
	return &DataService{
		users:      d.Users,
		categories: d.Categories,
		products:   d.Products,
		orders:     d.Orders,
		orderItems: d.OrderItems,
		reviews:    d.Reviews,
		logs:       d.Logs,
		lifecycle:  d.Lifecycle,
		seeder:     d.Seeder,
		classify:   d.Classifier,
		validate:   validator.New(),
		log:        d.Logger,
	}
}

func (s *DataService) check(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// ---- users ----

func (s *DataService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	u := &domain.User{
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, s.classify.Classify(err)
	}
	return u, nil
}

func (s *DataService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return u, nil
}

func (s *DataService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return u, nil
}

func (s *DataService) ListUsers(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return us, nil
}

func (s *DataService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	u, err := s.users.Update(ctx, id, in.changes(utils.HashPassword))
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return u, nil
}

func (s *DataService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- categories ----

func (s *DataService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := &domain.Category{
		Name:        in.Name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		IsActive:    active,
		Metadata:    in.Metadata,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, s.classify.Classify(err)
	}
	return c, nil
}

func (s *DataService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return c, nil
}

func (s *DataService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cs, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return cs, nil
}

func (s *DataService) UpdateCategory(ctx context.Context, id uint, in UpdateCategoryInput) (*domain.Category, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	c, err := s.categories.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return c, nil
}

func (s *DataService) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	ok, err := s.categories.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- products ----

func (s *DataService) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      in.Images,
		CategoryID:  in.CategoryID,
		IsAvailable: available,
		Metadata:    in.Metadata,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, s.classify.Classify(err)
	}
	return p, nil
}

func (s *DataService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return p, nil
}

func (s *DataService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return ps, nil
}

func (s *DataService) UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (*domain.Product, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	p, err := s.products.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return p, nil
}

func (s *DataService) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- orders ----

func (s *DataService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	o := &domain.Order{
		UserID:          in.UserID,
		OrderNumber:     in.OrderNumber,
		Status:          in.Status,
		PaymentStatus:   in.PaymentStatus,
		Subtotal:        in.Subtotal,
		TaxAmount:       in.TaxAmount,
		ShippingAmount:  in.ShippingAmount,
		DiscountAmount:  in.DiscountAmount,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentMetadata: in.PaymentMetadata,
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentStatusPending
	}
	if o.TotalAmount == 0 {
		o.TotalAmount = o.ComputedTotal()
	} else if !o.TotalConsistent() {
		return nil, fmt.Errorf("%w: total %.2f does not match breakdown %.2f",
			domain.ErrInvalidInput, o.TotalAmount, o.ComputedTotal())
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, s.classify.Classify(err)
	}
	for i := range in.Items {
		if _, err := s.CreateOrderItem(ctx, CreateOrderItemInput{
			OrderID:    o.ID,
			ProductID:  in.Items[i].ProductID,
			Quantity:   in.Items[i].Quantity,
			UnitPrice:  in.Items[i].UnitPrice,
			TotalPrice: in.Items[i].TotalPrice,
		}); err != nil {
			return nil, err
		}
	}
	return s.GetOrder(ctx, o.ID)
}

func (s *DataService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return o, nil
}

func (s *DataService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	os, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return os, nil
}

func (s *DataService) ListOrdersByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	os, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return os, nil
}

func (s *DataService) UpdateOrder(ctx context.Context, id uint, in UpdateOrderInput) (*domain.Order, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	o, err := s.orders.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return o, nil
}

func (s *DataService) DeleteOrder(ctx context.Context, id uint) (bool, error) {
	ok, err := s.orders.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- order items ----

func (s *DataService) CreateOrderItem(ctx context.Context, in CreateOrderItemInput) (*domain.OrderItem, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	it := &domain.OrderItem{
		OrderID:    in.OrderID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		TotalPrice: in.TotalPrice,
	}
	if it.TotalPrice == 0 {
		it.TotalPrice = it.UnitPrice * float64(it.Quantity)
	}
	// Best-effort snapshot of the product at order time. A missing
	// product is left to the foreign key so it classifies as an
	// invalid reference, not a lookup failure.
	if p, err := s.products.FindByID(ctx, in.ProductID); err == nil {
		it.ProductSnapshot = domain.SnapshotOf(p)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, s.classify.Classify(err)
	}
	if err := s.orderItems.Create(ctx, it); err != nil {
		return nil, s.classify.Classify(err)
	}
	return it, nil
}

func (s *DataService) GetOrderItem(ctx context.Context, id uint) (*domain.OrderItem, error) {
	it, err := s.orderItems.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return it, nil
}

func (s *DataService) ListOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	its, err := s.orderItems.FindAll(ctx)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return its, nil
}

func (s *DataService) ListOrderItemsByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	its, err := s.orderItems.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return its, nil
}

func (s *DataService) UpdateOrderItem(ctx context.Context, id uint, in UpdateOrderItemInput) (*domain.OrderItem, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	it, err := s.orderItems.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return it, nil
}

func (s *DataService) DeleteOrderItem(ctx context.Context, id uint) (bool, error) {
	ok, err := s.orderItems.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- reviews ----

func (s *DataService) CreateReview(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	verified := false
	if in.IsVerified != nil {
		verified = *in.IsVerified
	}
	r := &domain.Review{
		UserID:     in.UserID,
		ProductID:  in.ProductID,
		Rating:     in.Rating,
		Title:      in.Title,
		Comment:    in.Comment,
		IsVerified: verified,
		Images:     in.Images,
		Metadata:   in.Metadata,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, s.classify.Classify(err)
	}
	return r, nil
}

func (s *DataService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return r, nil
}

func (s *DataService) ListReviews(ctx context.Context, limit int64) ([]domain.Review, error) {
	rs, err := s.reviews.FindAll(ctx, limit)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return rs, nil
}

func (s *DataService) ListReviewsByProduct(ctx context.Context, productID int, limit int64) ([]domain.Review, error) {
	rs, err := s.reviews.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return rs, nil
}

func (s *DataService) ListReviewsByUser(ctx context.Context, userID string, limit int64) ([]domain.Review, error) {
	rs, err := s.reviews.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return rs, nil
}

func (s *DataService) UpdateReview(ctx context.Context, id string, in UpdateReviewInput) (*domain.Review, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	r, err := s.reviews.Update(ctx, id, in.changes())
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return r, nil
}

func (s *DataService) DeleteReview(ctx context.Context, id string) (bool, error) {
	ok, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// MarkReviewHelpful bumps the helpful counter up or down. The decrement
// is a no-op once the counter reaches zero.
func (s *DataService) MarkReviewHelpful(ctx context.Context, id string, increment bool) (*domain.Review, error) {
	delta := 1
	if !increment {
		delta = -1
	}
	r, err := s.reviews.AdjustHelpfulCount(ctx, id, delta)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return r, nil
}

// ---- logs ----

func (s *DataService) CreateLog(ctx context.Context, in CreateLogInput) (*domain.Log, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	l := &domain.Log{
		Level:        in.Level,
		Category:     in.Category,
		Message:      in.Message,
		UserID:       in.UserID,
		SessionID:    in.SessionID,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
		Endpoint:     in.Endpoint,
		Method:       in.Method,
		StatusCode:   in.StatusCode,
		ResponseTime: in.ResponseTime,
		RequestData:  in.RequestData,
		ResponseData: in.ResponseData,
		ErrorDetails: in.ErrorDetails,
		Metadata:     in.Metadata,
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, s.classify.Classify(err)
	}
	return l, nil
}

func (s *DataService) GetLog(ctx context.Context, id string) (*domain.Log, error) {
	l, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return l, nil
}

func (s *DataService) UpdateLog(ctx context.Context, id string, in UpdateLogInput) (*domain.Log, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	changes := in.changes()
	if len(changes) == 0 {
		return s.GetLog(ctx, id)
	}
	l, err := s.logs.Update(ctx, id, changes)
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return l, nil
}

func (s *DataService) ListLogs(ctx context.Context, f LogFilter) ([]domain.Log, error) {
	if err := s.check(f); err != nil {
		return nil, err
	}
	ls, err := s.logs.Find(ctx, domain.LogQuery{
		Level:    f.Level,
		Category: f.Category,
		UserID:   f.UserID,
		From:     f.From,
		To:       f.To,
		Limit:    f.Limit,
	})
	if err != nil {
		return nil, s.classify.Classify(err)
	}
	return ls, nil
}

func (s *DataService) DeleteLog(ctx context.Context, id string) (bool, error) {
	ok, err := s.logs.Delete(ctx, id)
	if err != nil {
		return false, s.classify.Classify(err)
	}
	return ok, nil
}

// ---- schema lifecycle ----

func (s *DataService) SoftReset(ctx context.Context) schema.Result {
	return s.lifecycle.SoftReset(ctx)
}

func (s *DataService) HardReset(ctx context.Context) schema.Result {
	return s.lifecycle.HardReset(ctx)
}

func (s *DataService) RecreateSchema(ctx context.Context) schema.Result {
	return s.lifecycle.Recreate(ctx)
}

func (s *DataService) SeedUsers(ctx context.Context) schema.Result {
	return s.seeder.SeedUsers(ctx)
}

func (s *DataService) SeedAll(ctx context.Context) schema.Result {
	return s.seeder.SeedAll(ctx)
}
