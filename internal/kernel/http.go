// Package kernel assembles the HTTP handler: the global middleware stack
// followed by the catalog routes.
package kernel

import (
	"log/slog"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/reqid"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Global middleware, outermost first:
//
//  1. metrics   total latency including panics
//  2. recovery  turns panics into 500s
//  3. reqid     request id before anything logs
//  4. logger    per-request slog logger tagged with the id
//  5. CORS
func NewHTTPKernel(log *slog.Logger, corsOrigins []string, api routes.API) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(middleware.CORSFor(corsOrigins)))

	routes.RegisterAPI(r, api)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
