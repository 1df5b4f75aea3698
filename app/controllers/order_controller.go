package controllers

import (
	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
	limits  Limits
}

func NewOrderController(service *services.OrderService, limits Limits) *OrderController {
	return &OrderController{service: service, limits: limits}
}

func (h *OrderController) Index(c *ctx.Context) {
	all, err := h.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(all)
}

func (h *OrderController) Show(c *ctx.Context) {
	o, err := h.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(o)
}

func (h *OrderController) Store(c *ctx.Context) {
	var in models.OrderInput
	if !c.BindJSON(&in, h.limits.MaxBodyBytes) {
		return
	}

	o, err := h.service.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(o)
}

func (h *OrderController) Update(c *ctx.Context) {
	var patch models.OrderPatch
	if !c.BindJSON(&patch, h.limits.MaxBodyBytes) {
		return
	}

	o, err := h.service.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(o)
}

func (h *OrderController) Destroy(c *ctx.Context) {
	if err := h.service.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
