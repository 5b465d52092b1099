package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-commerce-backend/internal/domain"
	"go-commerce-backend/pkg/utils"
)

// ---- in-memory fakes ----

type fakeUserRepo struct {
	byID        map[uint]*domain.User
	nextID      uint
	createErr   error
	lastChanges map[string]any
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uint]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) FindAll(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id uint, changes map[string]any) (*domain.User, error) {
	f.lastChanges = changes
	return f.FindByID(ctx, id)
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

type fakeProductRepo struct {
	byID map[uint]*domain.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(context.Context) ([]domain.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(context.Context, uint, map[string]any) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeProductRepo) Delete(context.Context, uint) (bool, error) { return false, nil }

type fakeOrderRepo struct {
	created []*domain.Order
	nextID  uint
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	f.nextID++
	o.ID = f.nextID
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) FindAll(context.Context) ([]domain.Order, error) { return nil, nil }
func (f *fakeOrderRepo) FindByUser(context.Context, uint) ([]domain.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) Update(context.Context, uint, map[string]any) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeOrderRepo) Delete(context.Context, uint) (bool, error) { return false, nil }

type fakeOrderItemRepo struct {
	created []*domain.OrderItem
}

func (f *fakeOrderItemRepo) Create(_ context.Context, it *domain.OrderItem) error {
	it.ID = uint(len(f.created) + 1)
	f.created = append(f.created, it)
	return nil
}

func (f *fakeOrderItemRepo) FindByID(context.Context, uint) (*domain.OrderItem, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeOrderItemRepo) FindAll(context.Context) ([]domain.OrderItem, error) { return nil, nil }
func (f *fakeOrderItemRepo) FindByOrder(context.Context, uint) ([]domain.OrderItem, error) {
	return nil, nil
}
func (f *fakeOrderItemRepo) Update(context.Context, uint, map[string]any) (*domain.OrderItem, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeOrderItemRepo) Delete(context.Context, uint) (bool, error) { return false, nil }

type fakeReviewRepo struct {
	domain.ReviewRepository
	lastDelta int
}

func (f *fakeReviewRepo) AdjustHelpfulCount(_ context.Context, id string, delta int) (*domain.Review, error) {
	f.lastDelta = delta
	return &domain.Review{HelpfulCount: 1}, nil
}

// ---- tests ----

func TestCreateUserHashesAndDefaultsRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := New(Deps{Users: users})

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, utils.CheckPassword("secret123", u.PasswordHash))
}

func TestCreateUserRejectsBadInputBeforeStore(t *testing.T) {
	users := newFakeUserRepo()
	users.createErr = fmt.Errorf("store must not be reached")
	svc := New(Deps{Users: users})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "not-an-email",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "ok@example.com",
		Password: "short", // below minimum length
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUserClassifiesStoreError(t *testing.T) {
	users := newFakeUserRepo()
	users.createErr = &pgconn.PgError{Code: "23505", Message: "duplicate email"}
	svc := New(Deps{Users: users})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateUserPartialChanges(t *testing.T) {
	users := newFakeUserRepo()
	svc := New(Deps{Users: users})

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	name := "Alice"
	_, err = svc.UpdateUser(context.Background(), created.ID, UpdateUserInput{FirstName: &name})
	require.NoError(t, err)

	// only the supplied field lands in the change set
	assert.Equal(t, map[string]any{"first_name": "Alice"}, users.lastChanges)
}

func TestDeleteUserTwice(t *testing.T) {
	users := newFakeUserRepo()
	svc := New(Deps{Users: users})

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete reports false without an error")
}

func TestCreateOrderComputesTotal(t *testing.T) {
	orders := &fakeOrderRepo{}
	items := &fakeOrderItemRepo{}
	products := &fakeProductRepo{byID: map[uint]*domain.Product{}}
	svc := New(Deps{Orders: orders, OrderItems: items, Products: products})

	o, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:         1,
		OrderNumber:    "ORD-1001",
		Subtotal:       100,
		TaxAmount:      8,
		ShippingAmount: 2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 110, o.TotalAmount, domain.MoneyEpsilon)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
}

func TestCreateOrderRejectsInconsistentTotal(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := New(Deps{Orders: orders})

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:      1,
		OrderNumber: "ORD-1002",
		Subtotal:    100,
		TotalAmount: 95, // breakdown says 100
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, orders.created)
}

func TestCreateOrderItemSnapshotsProduct(t *testing.T) {
	items := &fakeOrderItemRepo{}
	products := &fakeProductRepo{byID: map[uint]*domain.Product{
		9: {ID: 9, Name: "Mug", Price: 12.50},
	}}
	svc := New(Deps{OrderItems: items, Products: products})

	it, err := svc.CreateOrderItem(context.Background(), CreateOrderItemInput{
		OrderID:   1,
		ProductID: 9,
		Quantity:  3,
		UnitPrice: 12.50,
	})
	require.NoError(t, err)
	assert.InDelta(t, 37.50, it.TotalPrice, domain.MoneyEpsilon)
	require.NotNil(t, it.ProductSnapshot)
	assert.Equal(t, "Mug", it.ProductSnapshot["name"])
}

func TestCreateOrderItemMissingProductStillWrites(t *testing.T) {
	items := &fakeOrderItemRepo{}
	products := &fakeProductRepo{byID: map[uint]*domain.Product{}}
	svc := New(Deps{OrderItems: items, Products: products})

	// the relational foreign key is the authority on referential
	// integrity; an absent product only means no snapshot
	it, err := svc.CreateOrderItem(context.Background(), CreateOrderItemInput{
		OrderID:   1,
		ProductID: 404,
		Quantity:  1,
		UnitPrice: 5,
	})
	require.NoError(t, err)
	assert.Nil(t, it.ProductSnapshot)
}

func TestMarkReviewHelpfulDelta(t *testing.T) {
	reviews := &fakeReviewRepo{}
	svc := New(Deps{Reviews: reviews})

	_, err := svc.MarkReviewHelpful(context.Background(), "abc", true)
	require.NoError(t, err)
	assert.Equal(t, 1, reviews.lastDelta)

	_, err = svc.MarkReviewHelpful(context.Background(), "abc", false)
	require.NoError(t, err)
	assert.Equal(t, -1, reviews.lastDelta)
}

type fakeLogRepo struct {
	byID        map[string]*domain.Log
	lastChanges map[string]any
	updateCalls int
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{byID: map[string]*domain.Log{}}
}

func (f *fakeLogRepo) Create(_ context.Context, l *domain.Log) error { return nil }

func (f *fakeLogRepo) FindByID(_ context.Context, id string) (*domain.Log, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (f *fakeLogRepo) Find(context.Context, domain.LogQuery) ([]domain.Log, error) {
	return nil, nil
}

func (f *fakeLogRepo) Update(ctx context.Context, id string, changes map[string]any) (*domain.Log, error) {
	f.updateCalls++
	f.lastChanges = changes
	return f.FindByID(ctx, id)
}

func (f *fakeLogRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func TestUpdateLogPartialChanges(t *testing.T) {
	logs := newFakeLogRepo()
	logs.byID["a1"] = &domain.Log{Level: domain.LogLevelInfo, Message: "boot"}
	svc := New(Deps{Logs: logs})

	lvl := domain.LogLevelError
	_, err := svc.UpdateLog(context.Background(), "a1", UpdateLogInput{Level: &lvl})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.updateCalls)
	assert.Equal(t, map[string]any{"level": domain.LogLevelError}, logs.lastChanges)
}

func TestUpdateLogEmptyInputSkipsWrite(t *testing.T) {
	logs := newFakeLogRepo()
	logs.byID["a1"] = &domain.Log{Message: "boot"}
	svc := New(Deps{Logs: logs})

	// nothing to set means no update document at all, just a read
	got, err := svc.UpdateLog(context.Background(), "a1", UpdateLogInput{})
	require.NoError(t, err)
	assert.Equal(t, "boot", got.Message)
	assert.Zero(t, logs.updateCalls)
}

func TestUpdateLogRejectsUnknownLevel(t *testing.T) {
	logs := newFakeLogRepo()
	svc := New(Deps{Logs: logs})

	lvl := domain.LogLevel("fatal")
	_, err := svc.UpdateLog(context.Background(), "a1", UpdateLogInput{Level: &lvl})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, logs.updateCalls)
}
