package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

const (
	topProductsLimit = 5
	dayLayout        = "2006-01-02"

	// generationKey is bumped on every catalog write. Cached reports are
	// keyed by it, so a write orphans every report cached before it.
	generationKey = "generation"
)

type DashboardService struct {
	metrics repositories.MetricsRepository
	reports *cache.Store
	ttl     time.Duration
}

// NewDashboardService builds the report engine. Caching is off when reports
// is disabled or ttl is not positive.
func NewDashboardService(m repositories.MetricsRepository, reports *cache.Store, ttl time.Duration) *DashboardService {
	return &DashboardService{metrics: m, reports: reports, ttl: ttl}
}

// Window turns optional YYYY-MM-DD bounds into an inclusive UTC range:
// start at 00:00:00, end at 23:59:59.999999.
func Window(startDate, endDate string) (models.DateWindow, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)

	errs := map[string]string{}
	if msg := validate.Var("start_date", startDate, "nullable,date"); msg != "" {
		errs["start_date"] = msg
	}
	if msg := validate.Var("end_date", endDate, "nullable,date"); msg != "" {
		errs["end_date"] = msg
	}
	if err := invalid(errs); err != nil {
		return models.DateWindow{}, err
	}

	var w models.DateWindow
	if startDate != "" {
		t, _ := time.ParseInLocation(dayLayout, startDate, time.UTC)
		w.Start = &t
	}
	if endDate != "" {
		t, _ := time.ParseInLocation(dayLayout, endDate, time.UTC)
		t = t.Add(24*time.Hour - time.Microsecond)
		w.End = &t
	}
	return w, nil
}

// GetMetrics builds the dashboard report for the given window. Either bound
// may be empty.
func (s *DashboardService) GetMetrics(ctx context.Context, startDate, endDate string) (models.DashboardMetrics, error) {
	w, err := Window(startDate, endDate)
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	key, cacheable := s.cacheKey(ctx, startDate, endDate)
	if cacheable {
		var cached models.DashboardMetrics
		if s.reports.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	report, err := s.build(ctx, w)
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	if cacheable {
		if err := s.reports.Set(ctx, key, report, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("dashboard cache write failed", "error", err)
		}
	}
	return report, nil
}

func (s *DashboardService) cacheKey(ctx context.Context, startDate, endDate string) (string, bool) {
	if !s.reports.Enabled() || s.ttl <= 0 {
		return "", false
	}
	gen, err := s.reports.Counter(ctx, generationKey)
	if err != nil {
		logger.WithCtx(ctx).Warn("dashboard cache generation read failed", "error", err)
		return "", false
	}
	return fmt.Sprintf("report:%d:%s:%s", gen, startDate, endDate), true
}

// build runs the five sub-queries concurrently over the same window.
func (s *DashboardService) build(ctx context.Context, w models.DateWindow) (models.DashboardMetrics, error) {
	defer func(start time.Time) {
		metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	var (
		report   models.DashboardMetrics
		total    float64
		average  float64
		periods  map[string]models.PeriodMetrics
		top      []models.TopProduct
		category []models.CategoryRevenue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.TotalOrders, err = s.metrics.CountOrders(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		total, average, err = s.metrics.Revenue(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		periods, err = s.metrics.OrdersByPeriod(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.metrics.TopProducts(gctx, w, topProductsLimit)
		return err
	})
	g.Go(func() (err error) {
		category, err = s.metrics.RevenueByCategory(gctx, w)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("dashboard: %w", err)
	}

	report.TotalRevenue = total
	report.AverageOrderValue = average
	report.OrdersByPeriod = periods
	if report.OrdersByPeriod == nil {
		report.OrdersByPeriod = map[string]models.PeriodMetrics{}
	}
	report.TopProducts = models.NonNil(top)
	report.RevenueByCategory = models.NonNil(category)
	return report, nil
}

// invalidateReports orphans every cached dashboard report.
func invalidateReports(ctx context.Context, reports *cache.Store) {
	if _, err := reports.Incr(ctx, generationKey); err != nil {
		logger.WithCtx(ctx).Warn("dashboard cache invalidation failed", "error", err)
	}
}
