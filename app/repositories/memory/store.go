// Package memory implements the repository ports over in-process maps. It
// backs DB_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// table keeps documents by id and remembers insertion order so listings are
// stable.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) existing(ids []string) []string {
	return collection.Unique(collection.Filter(ids, func(id string) bool {
		_, ok := t.rows[id]
		return ok
	}))
}

// Store holds all three collections behind one lock.
type Store struct {
	mu         sync.RWMutex
	categories *table[models.Category]
	products   *table[models.Product]
	orders     *table[models.Order]
}

func New() *Store {
	return &Store{
		categories: newTable[models.Category](),
		products:   newTable[models.Product](),
		orders:     newTable[models.Order](),
	}
}

func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Products() *ProductRepository   { return &ProductRepository{s: s} }
func (s *Store) Orders() *OrderRepository       { return &OrderRepository{s: s} }
func (s *Store) Metrics() *MetricsRepository     { return &MetricsRepository{s: s} }

var (
	_ repositories.CategoryRepository = (*CategoryRepository)(nil)
	_ repositories.ProductRepository  = (*ProductRepository)(nil)
	_ repositories.OrderRepository    = (*OrderRepository)(nil)
	_ repositories.MetricsRepository  = (*MetricsRepository)(nil)
)

func cloneProduct(p models.Product) models.Product {
	p.CategoryIDs = slices.Clone(models.NonNil(p.CategoryIDs))
	return p
}

func cloneOrder(o models.Order) models.Order {
	o.ProductIDs = slices.Clone(models.NonNil(o.ProductIDs))
	return o
}

func ptr[T any](v T) *T { return &v }

type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) Create(_ context.Context, c models.Category) (models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories.put(c.ID, c)
	return c, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(c), nil
}

func (r *CategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.all(), nil
}

func (r *CategoryRepository) Update(_ context.Context, c models.Category) (models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories.rows[c.ID]; ok {
		r.s.categories.put(c.ID, c)
	}
	return c, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories.remove(id)
	return nil
}

func (r *CategoryRepository) GetExistingIDs(_ context.Context, ids []string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.existing(ids), nil
}

type ProductRepository struct{ s *Store }

func (r *ProductRepository) Create(_ context.Context, p models.Product) (models.Product, error) {
	p = cloneProduct(p)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products.put(p.ID, p)
	return cloneProduct(p), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(cloneProduct(p)), nil
}

func (r *ProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.products.all()
	for i := range out {
		out[i] = cloneProduct(out[i])
	}
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, p models.Product) (models.Product, error) {
	p = cloneProduct(p)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products.rows[p.ID]; ok {
		r.s.products.put(p.ID, p)
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) BulkUpdate(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ps))
	for _, p := range ps {
		u, err := r.Update(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products.remove(id)
	return nil
}

func (r *ProductRepository) GetExistingIDs(_ context.Context, ids []string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products.existing(ids), nil
}

func (r *ProductRepository) GetByCategory(_ context.Context, categoryID string) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Product{}
	for _, p := range r.s.products.all() {
		if slices.Contains(p.CategoryIDs, categoryID) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *ProductRepository) GetPrices(_ context.Context, ids []string) ([]models.ProductPrice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.ProductPrice{}
	for _, id := range r.s.products.existing(ids) {
		out = append(out, models.ProductPrice{ID: id, Price: r.s.products.rows[id].Price})
	}
	return out, nil
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(_ context.Context, o models.Order) (models.Order, error) {
	o = cloneOrder(o)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders.put(o.ID, o)
	return cloneOrder(o), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.rows[id]
	if !ok {
		return nil, nil
	}
	return ptr(cloneOrder(o)), nil
}

func (r *OrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.orders.all()
	for i := range out {
		out[i] = cloneOrder(out[i])
	}
	return out, nil
}

func (r *OrderRepository) Update(_ context.Context, o models.Order) (models.Order, error) {
	o = cloneOrder(o)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.rows[o.ID]; ok {
		r.s.orders.put(o.ID, o)
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) BulkUpdate(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		u, err := r.Update(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders.remove(id)
	return nil
}

func (r *OrderRepository) GetByProduct(_ context.Context, productID string) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Order{}
	for _, o := range r.s.orders.all() {
		if slices.Contains(o.ProductIDs, productID) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}
