// Package controllers adapts HTTP requests to the catalog services.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// fail maps a service error onto the response envelope.
//
//	ValidationError → 422 with the field map
//	NotFoundError   → 404
//	anything else   → 500, logged with the request id
func fail(c *ctx.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.ValidationError(ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}

// Limits caps request bodies read by the controllers.
type Limits struct {
	MaxBodyBytes   int64
	MaxUploadBytes int64
}
