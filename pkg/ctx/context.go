// Package ctx wraps a request/response pair behind a single *Context so
// handlers read params and write the JSON envelope through one value.
//
//	func (h *CategoryController) Show(c *ctx.Context) {
//	    c.Success(category)
//	}
//
//	r.Get("/categories/{id}", "categories.show", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts h to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context is only valid for the duration of the handler call.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON decodes the body into dest. On failure it writes a 400 and
// returns false.
//
//	var in models.CategoryInput
//	if !c.BindJSON(&in, maxBody) {
//	    return
//	}
func (c *Context) BindJSON(dest any, maxBytes int64) bool {
	if err := bind.JSON(c.R, dest, maxBytes); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.Write(c.W, code, v)
}

// Success sends a 200 envelope.
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends a bare 204.
func (c *Context) NoContent() {
	c.status = http.StatusNoContent
	c.W.WriteHeader(http.StatusNoContent)
}

// Error sends an error envelope.
func (c *Context) Error(code int, message string) {
	c.JSON(code, response.Envelope{Status: code, Message: message})
}

// ErrorWith sends an error envelope with extra detail under "errors".
func (c *Context) ErrorWith(code int, message string, details any) {
	c.JSON(code, response.Envelope{Status: code, Message: message, Errors: details})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.ErrorWith(http.StatusUnprocessableEntity, "Validation failed", errs)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

// WrittenStatus returns the status code written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
