package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CatalogAPI
// =====================

type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogAPI) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

var _ repo.CatalogAPI = (*MockCatalogAPI)(nil)

// =====================
// Mock: OrderAPI
// =====================

type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) SubmitOrder(ctx context.Context, order model.CheckoutOrder) (model.OrderAck, error) {
	args := m.Called(ctx, order)
	ack, _ := args.Get(0).(model.OrderAck)
	return ack, args.Error(1)
}

var _ repo.OrderAPI = (*MockOrderAPI)(nil)

// =====================
// Mock: ReceiptRepository / ReceiptPublisher
// =====================

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, r *model.Receipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindByCode(ctx context.Context, code string) (model.Receipt, error) {
	args := m.Called(ctx, code)
	r, _ := args.Get(0).(model.Receipt)
	return r, args.Error(1)
}

func (m *MockReceiptRepository) ListByCustomer(ctx context.Context, customerIdentifier string, limit int) ([]model.Receipt, error) {
	args := m.Called(ctx, customerIdentifier, limit)
	rs, _ := args.Get(0).([]model.Receipt)
	return rs, args.Error(1)
}

var _ repo.ReceiptRepository = (*MockReceiptRepository)(nil)

type MockReceiptPublisher struct {
	mock.Mock
}

func (m *MockReceiptPublisher) PublishReceipt(ctx context.Context, r model.Receipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

var _ repo.ReceiptPublisher = (*MockReceiptPublisher)(nil)

// =====================
// Mock: AuthAPI / SessionRepository
// =====================

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Token(ctx context.Context, email string, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

var _ repo.AuthAPI = (*MockAuthAPI)(nil)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, sessionID string, rec repo.SessionRecord, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, rec, ttl)
	return args.Error(0)
}

func (m *MockSessionRepository) Find(ctx context.Context, sessionID string) (repo.SessionRecord, error) {
	args := m.Called(ctx, sessionID)
	rec, _ := args.Get(0).(repo.SessionRecord)
	return rec, args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

var _ repo.SessionRepository = (*MockSessionRepository)(nil)

// =====================
// Mock: SalesAPI
// =====================

type MockSalesAPI struct {
	mock.Mock
}

func (m *MockSalesAPI) ListSales(ctx context.Context) ([]model.Sale, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Sale)
	return s, args.Error(1)
}

func (m *MockSalesAPI) ListSalesByCedula(ctx context.Context, cedula string) ([]model.Sale, error) {
	args := m.Called(ctx, cedula)
	s, _ := args.Get(0).([]model.Sale)
	return s, args.Error(1)
}

func (m *MockSalesAPI) GetSale(ctx context.Context, code string) (model.Sale, error) {
	args := m.Called(ctx, code)
	s, _ := args.Get(0).(model.Sale)
	return s, args.Error(1)
}

func (m *MockSalesAPI) UpdateSaleStatus(ctx context.Context, code string, status model.OrderStatus) (model.Sale, error) {
	args := m.Called(ctx, code, status)
	s, _ := args.Get(0).(model.Sale)
	return s, args.Error(1)
}

var _ repo.SalesAPI = (*MockSalesAPI)(nil)

type MockSupplierAPI struct {
	mock.Mock
}

func (m *MockSupplierAPI) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierAPI) GetSupplier(ctx context.Context, id int64) (model.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierAPI) CreateSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(model.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierAPI) UpdateSupplier(ctx context.Context, id int64, in model.SupplierInput) (model.Supplier, error) {
	args := m.Called(ctx, id, in)
	s, _ := args.Get(0).(model.Supplier)
	return s, args.Error(1)
}

func (m *MockSupplierAPI) DeleteSupplier(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.SupplierAPI = (*MockSupplierAPI)(nil)

type MockCategoryAPI struct {
	mock.Mock
}

func (m *MockCategoryAPI) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryAPI) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryAPI) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryAPI) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, id, in)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryAPI) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.CategoryAPI = (*MockCategoryAPI)(nil)

type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) ListUsers(ctx context.Context, skip int, limit int) ([]model.User, error) {
	args := m.Called(ctx, skip, limit)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *MockUserAPI) GetUser(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserAPI) CreateUser(ctx context.Context, in model.UserCreate) (model.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, id int64, in model.UserUpdate) (model.User, error) {
	args := m.Called(ctx, id, in)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserAPI) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.UserAPI = (*MockUserAPI)(nil)

// =====================
// helper
// =====================

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("sess-%d", g.n)
}

func shirt() model.Product {
	return model.Product{
		ID:       7,
		Name:     "Camisa Lino",
		Price:    decimal.RequireFromString("30.50"),
		ImageURL: "/img/camisa.png",
		Variants: []model.Variant{
			{ID: 71, ProductID: 7, Size: "M", Color: "Blanco", Stock: 10},
			{ID: 72, ProductID: 7, Size: "L", Color: "Azul", Stock: 1},
		},
	}
}
