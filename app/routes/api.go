package routes

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// API bundles the controllers mounted by RegisterAPI.
type API struct {
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Orders     *controllers.OrderController
	Dashboard  *controllers.DashboardController

	// Files serves stored images under /storage. Nil when images live on S3.
	Files http.Handler

	// Verifier guards every write route. Nil leaves writes open.
	Verifier *auth.Verifier
}

func RegisterAPI(r *router.Router, api API) {
	writes := middleware.RequireToken(api.Verifier)

	r.Get("/health", "health", ctx.Wrap(controllers.Health))
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/dashboard", "dashboard.show", ctx.Wrap(api.Dashboard.Show))

	categories := r.Group("/categories")
	categories.Get("/", "categories.index", ctx.Wrap(api.Categories.Index))
	categories.Get("/{id}", "categories.show", ctx.Wrap(api.Categories.Show))
	categories.Post("/", "categories.store", ctx.Wrap(api.Categories.Store), writes)
	categories.Patch("/{id}", "categories.update", ctx.Wrap(api.Categories.Update), writes)
	categories.Delete("/{id}", "categories.destroy", ctx.Wrap(api.Categories.Destroy), writes)

	products := r.Group("/products")
	products.Get("/", "products.index", ctx.Wrap(api.Products.Index))
	products.Get("/{id}", "products.show", ctx.Wrap(api.Products.Show))
	products.Post("/", "products.store", ctx.Wrap(api.Products.Store), writes)
	products.Patch("/{id}", "products.update", ctx.Wrap(api.Products.Update), writes)
	products.Delete("/{id}", "products.destroy", ctx.Wrap(api.Products.Destroy), writes)

	orders := r.Group("/orders")
	orders.Get("/", "orders.index", ctx.Wrap(api.Orders.Index))
	orders.Get("/{id}", "orders.show", ctx.Wrap(api.Orders.Show))
	orders.Post("/", "orders.store", ctx.Wrap(api.Orders.Store), writes)
	orders.Patch("/{id}", "orders.update", ctx.Wrap(api.Orders.Update), writes)
	orders.Delete("/{id}", "orders.destroy", ctx.Wrap(api.Orders.Destroy), writes)

	if api.Files != nil {
		r.Static("/storage", "storage", api.Files)
	}
}
