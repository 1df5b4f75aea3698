// Package server wires the catalog from configuration and runs the HTTP
// listener until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/repositories/memory"
	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/internal/kernel"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Services are the use cases shared by the HTTP API and the CLI.
type Services struct {
	Categories *services.CategoryService
	Products   *services.ProductService
	Orders     *services.OrderService
	Dashboard  *services.DashboardService
}

// App is a fully wired catalog. Close releases its connections.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Services Services
	Kernel   *kernel.HTTPKernel

	closers []func(context.Context) error
}

type stores struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	orders     repositories.OrderRepository
	metrics    repositories.MetricsRepository
	tx         repositories.Transactor
}

// Build connects the configured backends and assembles services, controllers
// and routes.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	st, err := app.openStores(ctx)
	if err != nil {
		app.Close(ctx) //nolint:errcheck
		return nil, err
	}

	disk, err := storage.New(ctx, cfg)
	if err != nil {
		app.Close(ctx) //nolint:errcheck
		return nil, err
	}

	var files http.Handler
	if local, ok := disk.(*storage.LocalDisk); ok {
		files = http.FileServer(http.Dir(local.Root()))
	}

	reports := cache.New(app.openRedis(ctx), "catalog:dashboard:")

	integrity := services.NewIntegrity(st.categories, st.products, st.orders, disk, st.tx)
	app.Services = Services{
		Categories: services.NewCategoryService(st.categories, integrity, reports),
		Products:   services.NewProductService(st.products, integrity, disk, reports),
		Orders:     services.NewOrderService(st.orders, st.products, reports),
		Dashboard:  services.NewDashboardService(st.metrics, reports, cfg.DashboardCacheTTL),
	}

	limits := controllers.Limits{MaxBodyBytes: cfg.MaxBodyBytes, MaxUploadBytes: cfg.MaxUploadBytes}
	app.Kernel = kernel.NewHTTPKernel(log, cfg.CORSOrigins, routes.API{
		Categories: controllers.NewCategoryController(app.Services.Categories, limits),
		Products:   controllers.NewProductController(app.Services.Products, limits),
		Orders:     controllers.NewOrderController(app.Services.Orders, limits),
		Dashboard:  controllers.NewDashboardController(app.Services.Dashboard),
		Files:      files,
		Verifier:   auth.NewVerifier(cfg.JWTSecret),
	})

	return app, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	switch a.Config.DBDriver {
	case config.DriverMemory:
		a.Log.Warn("using in-memory store, data is lost on exit")
		m := memory.New()
		return stores{m.Categories(), m.Products(), m.Orders(), m.Metrics(), database.NoTx{}}, nil

	case config.DriverMongo:
		m, err := database.Connect(ctx, a.Config.MongoURI, a.Config.MongoDB)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, m.Close)

		if err := m.EnsureIndexes(ctx); err != nil {
			return stores{}, err
		}

		var tx repositories.Transactor = database.NoTx{}
		if a.Config.MongoTransactions {
			tx = database.NewTransactor(m.Client)
		}

		a.Log.Info("mongo connected", "db", a.Config.MongoDB, "transactions", a.Config.MongoTransactions)
		return stores{
			categories: repositories.NewMongoCategoryRepository(m.DB),
			products:   repositories.NewMongoProductRepository(m.DB),
			orders:     repositories.NewMongoOrderRepository(m.DB),
			metrics:    repositories.NewMongoMetricsRepository(m.DB),
			tx:         tx,
		}, nil
	}
	return stores{}, fmt.Errorf("server: unsupported DB_DRIVER %q", a.Config.DBDriver)
}

// openRedis returns nil when Redis is not configured or not reachable; the
// report cache then stays disabled.
func (a *App) openRedis(ctx context.Context) redis.Cmdable {
	if a.Config.RedisAddr == "" {
		return nil
	}
	rdb, err := cache.Connect(ctx, a.Config.RedisAddr, a.Config.RedisPassword)
	if err != nil {
		a.Log.Warn("redis unavailable, dashboard cache disabled", "error", err)
		return nil
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	return rdb
}

// Close releases connections in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Start builds the app and serves HTTP until ctx is cancelled, then drains
// in-flight requests.
func Start(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	app, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(context.Background()) //nolint:errcheck

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Kernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("catalog listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
