package controllers

import (
	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type CategoryController struct {
	service *services.CategoryService
	limits  Limits
}

func NewCategoryController(service *services.CategoryService, limits Limits) *CategoryController {
	return &CategoryController{service: service, limits: limits}
}

func (h *CategoryController) Index(c *ctx.Context) {
	all, err := h.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(all)
}

func (h *CategoryController) Show(c *ctx.Context) {
	category, err := h.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(category)
}

func (h *CategoryController) Store(c *ctx.Context) {
	var in models.CategoryInput
	if !c.BindJSON(&in, h.limits.MaxBodyBytes) {
		return
	}

	category, err := h.service.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(category)
}

func (h *CategoryController) Update(c *ctx.Context) {
	var patch models.CategoryPatch
	if !c.BindJSON(&patch, h.limits.MaxBodyBytes) {
		return
	}

	category, err := h.service.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(category)
}

func (h *CategoryController) Destroy(c *ctx.Context) {
	if err := h.service.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
