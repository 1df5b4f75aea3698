package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

// ProductController accepts multipart/form-data for writes so an image can
// travel with the product fields. category_ids is sent as a JSON array
// string, e.g. category_ids=["a","b"]. PATCH also accepts a JSON body.
type ProductController struct {
	service *services.ProductService
	limits  Limits
}

func NewProductController(service *services.ProductService, limits Limits) *ProductController {
	return &ProductController{service: service, limits: limits}
}

func (h *ProductController) Index(c *ctx.Context) {
	all, err := h.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(all)
}

func (h *ProductController) Show(c *ctx.Context) {
	p, err := h.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

func (h *ProductController) Store(c *ctx.Context) {
	if !h.parseForm(c) {
		return
	}

	f := formReader{r: c.R, errs: map[string]string{}}
	in := models.ProductInput{
		Name:        f.text("name"),
		Description: f.text("description"),
		Price:       f.float("price"),
		CategoryIDs: f.ids("category_ids"),
		Image:       f.image("image"),
	}
	if len(f.errs) > 0 {
		c.ValidationError(f.errs)
		return
	}

	p, err := h.service.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(p)
}

func (h *ProductController) Update(c *ctx.Context) {
	var patch models.ProductPatch

	if bind.IsMultipart(c.R) {
		if !h.parseForm(c) {
			return
		}
		f := formReader{r: c.R, errs: map[string]string{}}
		patch = f.patch()
		if len(f.errs) > 0 {
			c.ValidationError(f.errs)
			return
		}
	} else if !c.BindJSON(&patch, h.limits.MaxBodyBytes) {
		return
	}

	p, err := h.service.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

func (h *ProductController) Destroy(c *ctx.Context) {
	if err := h.service.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

func (h *ProductController) parseForm(c *ctx.Context) bool {
	if !bind.IsMultipart(c.R) {
		c.Error(http.StatusUnsupportedMediaType, "expected multipart/form-data")
		return false
	}
	if err := bind.Multipart(c.R, h.limits.MaxUploadBytes); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// formReader pulls typed product fields out of a parsed multipart form and
// collects conversion errors per field.
type formReader struct {
	r    *http.Request
	errs map[string]string
}

func (f formReader) text(key string) string {
	v, _ := bind.FormValue(f.r, key)
	return v
}

func (f formReader) float(key string) float64 {
	raw, ok := bind.FormValue(f.r, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		f.errs[key] = "The " + key + " must be a number."
	}
	return n
}

func (f formReader) ids(key string) []string {
	raw, ok := bind.FormValue(f.r, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		f.errs[key] = "The " + key + " must be a JSON array of ids."
		return nil
	}
	return models.NonNil(ids)
}

func (f formReader) image(key string) *models.Upload {
	fh, data, err := bind.File(f.r, key)
	if errors.Is(err, bind.ErrMissingFile) {
		return nil
	}
	if err != nil {
		f.errs[key] = "The " + key + " could not be read."
		return nil
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &models.Upload{Filename: fh.Filename, ContentType: ct, Content: data}
}

// patch builds a ProductPatch from the keys present in the form. Forms have
// no null, so the literal "null" clears category_ids.
func (f formReader) patch() models.ProductPatch {
	var p models.ProductPatch
	if v, ok := bind.FormValue(f.r, "name"); ok {
		p.Name = models.Value(v)
	}
	if v, ok := bind.FormValue(f.r, "description"); ok {
		p.Description = models.Value(v)
	}
	if _, ok := bind.FormValue(f.r, "price"); ok {
		p.Price = models.Value(f.float("price"))
	}
	if v, ok := bind.FormValue(f.r, "category_ids"); ok {
		if strings.TrimSpace(v) == "null" {
			p.CategoryIDs = models.Null[[]string]()
		} else {
			p.CategoryIDs = models.Value(f.ids("category_ids"))
		}
	}
	p.Image = f.image("image")
	return p
}
