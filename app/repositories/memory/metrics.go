package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// periodLayout matches the %Y-%m-%d buckets produced by the Mongo pipeline.
const periodLayout = "2006-01-02"

// MetricsRepository mirrors the Mongo aggregations: UTC day buckets, counts
// per occurrence, current product prices, ties broken by id.
type MetricsRepository struct{ s *Store }

func inWindow(o models.Order, w models.DateWindow) bool {
	if w.Start != nil && o.Date.Before(*w.Start) {
		return false
	}
	if w.End != nil && o.Date.After(*w.End) {
		return false
	}
	return true
}

// matching must be called with the read lock held.
func (r *MetricsRepository) matching(w models.DateWindow) []models.Order {
	out := []models.Order{}
	for _, o := range r.s.orders.all() {
		if inWindow(o, w) {
			out = append(out, o)
		}
	}
	return out
}

func (r *MetricsRepository) CountOrders(_ context.Context, w models.DateWindow) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.matching(w))), nil
}

func (r *MetricsRepository) Revenue(_ context.Context, w models.DateWindow) (float64, float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := r.matching(w)
	if len(orders) == 0 {
		return 0, 0, nil
	}
	var total float64
	for _, o := range orders {
		total += o.Total
	}
	return total, total / float64(len(orders)), nil
}

func (r *MetricsRepository) OrdersByPeriod(_ context.Context, w models.DateWindow) (map[string]models.PeriodMetrics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := map[string]models.PeriodMetrics{}
	for _, o := range r.matching(w) {
		day := o.Date.UTC().Format(periodLayout)
		m := out[day]
		m.Count++
		m.Revenue += o.Total
		out[day] = m
	}
	return out, nil
}

func (r *MetricsRepository) TopProducts(_ context.Context, w models.DateWindow, limit int) ([]models.TopProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[string]int{}
	for _, o := range r.matching(w) {
		for _, id := range o.ProductIDs {
			counts[id]++
		}
	}

	ranked := make([]models.TopProduct, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, models.TopProduct{ProductID: id, Count: n})
	}
	slices.SortFunc(ranked, func(a, b models.TopProduct) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if limit >= 0 {
		ranked = collection.Take(ranked, limit)
	}

	// Limit first, then join: a dangling id still takes a slot.
	out := []models.TopProduct{}
	for _, tp := range ranked {
		p, ok := r.s.products.rows[tp.ProductID]
		if !ok {
			continue
		}
		tp.ProductName = p.Name
		out = append(out, tp)
	}
	return out, nil
}

func (r *MetricsRepository) RevenueByCategory(_ context.Context, w models.DateWindow) ([]models.CategoryRevenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	revenue := map[string]float64{}
	for _, o := range r.matching(w) {
		for _, pid := range o.ProductIDs {
			p, ok := r.s.products.rows[pid]
			if !ok {
				continue
			}
			for _, cid := range p.CategoryIDs {
				revenue[cid] += p.Price
			}
		}
	}

	out := []models.CategoryRevenue{}
	for cid, amount := range revenue {
		c, ok := r.s.categories.rows[cid]
		if !ok {
			continue
		}
		out = append(out, models.CategoryRevenue{CategoryID: cid, CategoryName: c.Name, Revenue: amount})
	}
	slices.SortFunc(out, func(a, b models.CategoryRevenue) int {
		if c := cmp.Compare(b.Revenue, a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID, b.CategoryID)
	})
	return out, nil
}
