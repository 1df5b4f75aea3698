package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/cache"
)

type OrderService struct {
	orders   repositories.OrderRepository
	products PriceLookup
	reports  *cache.Store
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, products PriceLookup, reports *cache.Store) *OrderService {
	return &OrderService{orders: orders, products: products, reports: reports, now: time.Now}
}

// Create prices the order from current product prices. Date defaults to now.
func (s *OrderService) Create(ctx context.Context, in models.OrderInput) (models.Order, error) {
	if err := invalid(in.Validate()); err != nil {
		return models.Order{}, err
	}

	total, err := ComputeTotal(ctx, s.products, in.ProductIDs)
	if err != nil {
		return models.Order{}, err
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}

	o, err := s.orders.Create(ctx, models.Order{
		ID:         uuid.NewString(),
		ProductIDs: in.ProductIDs,
		Total:      total,
		Date:       date.UTC(),
	})
	if err != nil {
		return models.Order{}, err
	}
	invalidateReports(ctx, s.reports)
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if o == nil {
		return models.Order{}, notFound("Order", id)
	}
	return *o, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	all, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.NonNil(all), nil
}

// Update applies patch. The total is recomputed only when product_ids is
// part of the patch; a date-only change leaves it alone.
func (s *OrderService) Update(ctx context.Context, id string, patch models.OrderPatch) (models.Order, error) {
	if err := invalid(patch.Validate()); err != nil {
		return models.Order{}, err
	}

	o, err := s.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	if patch.Date.Present() {
		o.Date = patch.Date.Value.UTC()
	}
	if patch.ProductIDs.Present() {
		total, err := ComputeTotal(ctx, s.products, patch.ProductIDs.Value)
		if err != nil {
			return models.Order{}, err
		}
		o.ProductIDs = patch.ProductIDs.Value
		o.Total = total
	}

	updated, err := s.orders.Update(ctx, o)
	if err != nil {
		return models.Order{}, err
	}
	invalidateReports(ctx, s.reports)
	return updated, nil
}

// Delete removes the order row. Nothing references orders.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, s.reports)
	return nil
}
