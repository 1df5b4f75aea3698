// Package repositories defines the storage ports the services depend on and
// their MongoDB implementations. The memory subpackage implements the same
// ports in process.
package repositories

import (
	"context"

	"github.com/shashiranjanraj/catalog/app/models"
)

// GetByID methods return (nil, nil) when the document does not exist.

type CategoryRepository interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c models.Category) (models.Category, error)
	Delete(ctx context.Context, id string) error

	// GetExistingIDs returns the subset of ids that exist.
	GetExistingIDs(ctx context.Context, ids []string) ([]string, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	BulkUpdate(ctx context.Context, ps []models.Product) ([]models.Product, error)
	Delete(ctx context.Context, id string) error

	GetExistingIDs(ctx context.Context, ids []string) ([]string, error)
	// GetByCategory returns every product whose category_ids contains id.
	GetByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	// GetPrices returns (id, price) for exactly the ids that exist.
	GetPrices(ctx context.Context, ids []string) ([]models.ProductPrice, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o models.Order) (models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o models.Order) (models.Order, error)
	BulkUpdate(ctx context.Context, orders []models.Order) ([]models.Order, error)
	Delete(ctx context.Context, id string) error

	// GetByProduct returns every order whose product_ids contains id.
	GetByProduct(ctx context.Context, productID string) ([]models.Order, error)
}

// MetricsRepository computes the dashboard sub-reports inside the store.
// Every method is read-only and filtered by the same window.
type MetricsRepository interface {
	CountOrders(ctx context.Context, w models.DateWindow) (int64, error)
	// Revenue returns the sum and mean of order totals, both 0 when nothing matches.
	Revenue(ctx context.Context, w models.DateWindow) (total, average float64, err error)
	OrdersByPeriod(ctx context.Context, w models.DateWindow) (map[string]models.PeriodMetrics, error)
	TopProducts(ctx context.Context, w models.DateWindow, limit int) ([]models.TopProduct, error)
	RevenueByCategory(ctx context.Context, w models.DateWindow) ([]models.CategoryRevenue, error)
}

// Transactor groups repository calls into one unit of work when the store
// supports it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
