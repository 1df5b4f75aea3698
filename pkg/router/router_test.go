package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroup_MiddlewareOrderAndRoutes(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/products", mw("group"))
	g.Get("/", "products.index", ok)
	g.Delete("/{id}", "products.destroy", ok, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/products", Name: "products.index"}, infos[0])
	assert.Equal(t, "/products/{id}", infos[1].Path)
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Patch("/orders/{id}", "orders.update", ok)

	u, err := r.URL("orders.update", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/42", u)

	_, err = r.URL("orders.update", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestStatic_StripsPrefix(t *testing.T) {
	r := router.New()
	var seen string
	r.Static("/storage", "storage", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen = req.URL.Path
	}))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/storage/products/p1", nil))

	assert.Equal(t, "/products/p1", seen)
	assert.Equal(t, "/storage/*", r.Routes()[0].Path)
}
