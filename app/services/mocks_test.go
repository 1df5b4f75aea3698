package services_test

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/catalog/app/models"
)

// ─── Repository mocks ─────────────────────────────────────────────────────────

type categoryRepo struct{ mock.Mock }

func (m *categoryRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *categoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]models.Category)
	return cs, args.Error(1)
}

func (m *categoryRepo) Update(ctx context.Context, c models.Category) (models.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *categoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *categoryRepo) GetExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).([]string)
	return found, args.Error(1)
}

type productRepo struct{ mock.Mock }

func (m *productRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *productRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]models.Product)
	return ps, args.Error(1)
}

func (m *productRepo) Update(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *productRepo) BulkUpdate(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	args := m.Called(ctx, ps)
	out, _ := args.Get(0).([]models.Product)
	return out, args.Error(1)
}

func (m *productRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *productRepo) GetExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).([]string)
	return found, args.Error(1)
}

func (m *productRepo) GetByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	args := m.Called(ctx, categoryID)
	ps, _ := args.Get(0).([]models.Product)
	return ps, args.Error(1)
}

func (m *productRepo) GetPrices(ctx context.Context, ids []string) ([]models.ProductPrice, error) {
	args := m.Called(ctx, ids)
	prices, _ := args.Get(0).([]models.ProductPrice)
	return prices, args.Error(1)
}

type orderRepo struct{ mock.Mock }

func (m *orderRepo) Create(ctx context.Context, o models.Order) (models.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.Order)
	return out, args.Error(1)
}

func (m *orderRepo) Update(ctx context.Context, o models.Order) (models.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *orderRepo) BulkUpdate(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	args := m.Called(ctx, orders)
	out, _ := args.Get(0).([]models.Order)
	return out, args.Error(1)
}

func (m *orderRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *orderRepo) GetByProduct(ctx context.Context, productID string) ([]models.Order, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).([]models.Order)
	return out, args.Error(1)
}

type metricsRepo struct{ mock.Mock }

func (m *metricsRepo) CountOrders(ctx context.Context, w models.DateWindow) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *metricsRepo) Revenue(ctx context.Context, w models.DateWindow) (float64, float64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *metricsRepo) OrdersByPeriod(ctx context.Context, w models.DateWindow) (map[string]models.PeriodMetrics, error) {
	args := m.Called(ctx, w)
	out, _ := args.Get(0).(map[string]models.PeriodMetrics)
	return out, args.Error(1)
}

func (m *metricsRepo) TopProducts(ctx context.Context, w models.DateWindow, limit int) ([]models.TopProduct, error) {
	args := m.Called(ctx, w, limit)
	out, _ := args.Get(0).([]models.TopProduct)
	return out, args.Error(1)
}

func (m *metricsRepo) RevenueByCategory(ctx context.Context, w models.DateWindow) ([]models.CategoryRevenue, error) {
	args := m.Called(ctx, w)
	out, _ := args.Get(0).([]models.CategoryRevenue)
	return out, args.Error(1)
}

// ─── Blob store mock ──────────────────────────────────────────────────────────

type imageStore struct{ mock.Mock }

func (m *imageStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *imageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// ─── Report cache ─────────────────────────────────────────────────────────────

// generationCounter records INCR calls; every other Redis command panics.
type generationCounter struct {
	redis.Cmdable
	keys []string
}

func (g *generationCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	g.keys = append(g.keys, key)
	return redis.NewIntResult(int64(len(g.keys)), nil)
}
