package services

import (
	"context"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/collection"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// ImageStore is the blob port used for product images.
type ImageStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

func productImageKey(productID string) string { return "products/" + productID }

// Integrity keeps category and product references consistent when the
// referenced row goes away, and checks references on write.
type Integrity struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	orders     repositories.OrderRepository
	images     ImageStore
	tx         repositories.Transactor
}

// NewIntegrity wires the engine. A nil tx runs cascades without a transaction.
func NewIntegrity(
	categories repositories.CategoryRepository,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	images ImageStore,
	tx repositories.Transactor,
) *Integrity {
	if tx == nil {
		tx = database.NoTx{}
	}
	return &Integrity{categories: categories, products: products, orders: orders, images: images, tx: tx}
}

// DeleteCategory strips categoryID from every product that lists it, then
// deletes the category. Deleting an unknown id is not an error.
func (g *Integrity) DeleteCategory(ctx context.Context, categoryID string) error {
	return g.tx.WithinTx(ctx, func(ctx context.Context) error {
		affected, err := g.products.GetByCategory(ctx, categoryID)
		if err != nil {
			return err
		}

		if len(affected) > 0 {
			for i := range affected {
				affected[i].CategoryIDs = collection.Without(affected[i].CategoryIDs, categoryID)
			}
			if _, err := g.products.BulkUpdate(ctx, affected); err != nil {
				return err
			}
			metrics.CascadeUpdates.WithLabelValues("category_product").Add(float64(len(affected)))
		}

		return g.categories.Delete(ctx, categoryID)
	})
}

// DeleteProduct strips productID from every order that contains it, drops
// the product image and deletes the product. Order totals are left as they
// were. The image delete is best effort.
func (g *Integrity) DeleteProduct(ctx context.Context, productID string) error {
	return g.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := g.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("Product", productID)
		}

		affected, err := g.orders.GetByProduct(ctx, productID)
		if err != nil {
			return err
		}

		if len(affected) > 0 {
			for i := range affected {
				affected[i].ProductIDs = collection.Without(affected[i].ProductIDs, productID)
			}
			if _, err := g.orders.BulkUpdate(ctx, affected); err != nil {
				return err
			}
			metrics.CascadeUpdates.WithLabelValues("product_order").Add(float64(len(affected)))
		}

		if err := g.images.Delete(ctx, productImageKey(productID)); err != nil {
			metrics.StorageDeleteFailures.Inc()
			logger.WithCtx(ctx).Warn("product image delete failed",
				"product_id", productID, "error", err)
		}

		return g.products.Delete(ctx, productID)
	})
}

// CheckCategories fails with a NotFoundError naming every id in ids that
// does not exist, in request order.
func (g *Integrity) CheckCategories(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := g.categories.GetExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	missing := collection.Difference(ids, existing)
	if len(missing) > 0 {
		return notFound("Category", missing...)
	}
	return nil
}
