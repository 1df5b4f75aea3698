package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories/memory"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

type catalog struct {
	categories *services.CategoryService
	products   *services.ProductService
	orders     *services.OrderService
	dashboard  *services.DashboardService
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	store := memory.New()
	disk, err := storage.NewLocal(t.TempDir(), "/storage")
	require.NoError(t, err)

	integrity := services.NewIntegrity(store.Categories(), store.Products(), store.Orders(), disk, nil)
	return &catalog{
		categories: services.NewCategoryService(store.Categories(), integrity, nil),
		products:   services.NewProductService(store.Products(), integrity, disk, nil),
		orders:     services.NewOrderService(store.Orders(), store.Products(), nil),
		dashboard:  services.NewDashboardService(store.Metrics(), nil, 0),
	}
}

func TestFlow_DeletesKeepReferencesConsistent(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	books, err := c.categories.Create(ctx, models.CategoryInput{Name: "Books"})
	require.NoError(t, err)

	atlas, err := c.products.Create(ctx, models.ProductInput{
		Name: "Atlas", Description: "World maps", Price: 20,
		CategoryIDs: []string{books.ID}, Image: png(),
	})
	require.NoError(t, err)
	assert.Equal(t, "/storage/products/"+atlas.ID, atlas.ImageURL)

	when := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order, err := c.orders.Create(ctx, models.OrderInput{ProductIDs: []string{atlas.ID, atlas.ID}, Date: &when})
	require.NoError(t, err)
	assert.Equal(t, 40.00, order.Total)

	require.NoError(t, c.categories.Delete(ctx, books.ID))
	got, err := c.products.Get(ctx, atlas.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.CategoryIDs)

	require.NoError(t, c.products.Delete(ctx, atlas.ID))
	_, err = c.products.Get(ctx, atlas.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	after, err := c.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, after.ProductIDs)
	assert.Equal(t, 40.00, after.Total, "totals keep their historical value")

	assert.ErrorIs(t, c.products.Delete(ctx, atlas.ID), services.ErrNotFound)
	assert.NoError(t, c.categories.Delete(ctx, books.ID))
}

func TestFlow_Dashboard(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	books, err := c.categories.Create(ctx, models.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	atlas, err := c.products.Create(ctx, models.ProductInput{
		Name: "Atlas", Description: "d", Price: 20, CategoryIDs: []string{books.ID}, Image: png(),
	})
	require.NoError(t, err)

	for _, d := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := c.orders.Create(ctx, models.OrderInput{ProductIDs: []string{atlas.ID}, Date: &d})
		require.NoError(t, err)
	}

	report, err := c.dashboard.GetMetrics(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.TotalOrders)
	assert.Equal(t, 40.0, report.TotalRevenue)
	assert.Equal(t, 20.0, report.AverageOrderValue)
	assert.Equal(t, map[string]models.PeriodMetrics{
		"2024-01-01": {Count: 1, Revenue: 20},
		"2024-01-31": {Count: 1, Revenue: 20},
	}, report.OrdersByPeriod)
	assert.Equal(t, []models.TopProduct{{ProductID: atlas.ID, ProductName: "Atlas", Count: 2}}, report.TopProducts)
	assert.Equal(t, []models.CategoryRevenue{{CategoryID: books.ID, CategoryName: "Books", Revenue: 40}}, report.RevenueByCategory)

	empty, err := c.dashboard.GetMetrics(ctx, "2030-01-01", "")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.Empty(t, empty.OrdersByPeriod)
	assert.NotNil(t, empty.TopProducts)
}

func TestFlow_RepeatedCategoryCountsRevenueOnce(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	books, err := c.categories.Create(ctx, models.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	atlas, err := c.products.Create(ctx, models.ProductInput{
		Name: "Atlas", Description: "d", Price: 20, CategoryIDs: []string{books.ID, books.ID}, Image: png(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{books.ID}, atlas.CategoryIDs)

	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err = c.orders.Create(ctx, models.OrderInput{ProductIDs: []string{atlas.ID}, Date: &when})
	require.NoError(t, err)

	report, err := c.dashboard.GetMetrics(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 20.0, report.TotalRevenue)
	assert.Equal(t, []models.CategoryRevenue{{CategoryID: books.ID, CategoryName: "Books", Revenue: 20}}, report.RevenueByCategory)
}
